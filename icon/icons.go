package icon

// Icon identifies a UI symbol.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Link
	Mark
	Search
	Play
	Pause
	Lock
	Unlock
	Volume
	Mute
	Speed
	Watched
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "OK",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "...",
		kaomoji: "(・_・)",
		squares: "🟪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "->",
		kaomoji: "(・∀・)",
		squares: "🟦",
	},
	Mark: {
		emoji:   "✅",
		nerd:    "",
		plain:   "*",
		kaomoji: "(✿◠‿◠)",
		squares: "🟩",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・ ) ?",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣) zzZ",
		squares: "🟨",
	},
	Lock: {
		emoji:   "🔒",
		nerd:    "",
		plain:   "[locked]",
		kaomoji: "(>_<)",
		squares: "🟥",
	},
	Unlock: {
		emoji:   "🔓",
		nerd:    "",
		plain:   "[unlocked]",
		kaomoji: "(＾▽＾)",
		squares: "🟩",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "ヽ(°〇°)ﾉ",
		squares: "🟦",
	},
	Mute: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "mute",
		kaomoji: "(。-_-。)",
		squares: "⬛",
	},
	Speed: {
		emoji:   "⚡",
		nerd:    "",
		plain:   "x",
		kaomoji: "ε=ε=(ノ≧∇≦)ノ",
		squares: "🟧",
	},
	Watched: {
		emoji:   "👀",
		nerd:    "",
		plain:   "seen",
		kaomoji: "(◉‿◉)",
		squares: "🟪",
	},
}
