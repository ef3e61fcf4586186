package constant

// Clip source links.
const (
	WatchURLFormat     = "https://www.youtube.com/watch?v=%s&t=%d"
	ThumbnailURLFormat = "https://img.youtube.com/vi/%s/maxresdefault.jpg"
	PlaylistPrefix     = "PL"
)
