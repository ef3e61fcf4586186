// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Media Playback - these keys configure the external player and the clip engine.
const (
	Player               = "player.default"
	PlayerVolume         = "player.volume"
	PlayerRate           = "player.rate"
	PlayerPollIntervalMs = "player.poll_interval_ms"
	PlayerControlsHideMs = "player.controls_hide_ms"
)

// Clip Catalog - these keys locate the clip index.
const (
	CatalogPath        = "catalog.path"
	CatalogSuggestions = "catalog.suggestions"
)

// Watched Records - these keys configure completion persistence.
const (
	WatchedEnable = "watched.enable"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Metrics endpoint.
const (
	MetricsAddr = "metrics.addr"
)
