package tui

type state int

const (
	idleState state = iota
	playerState
	errorState
	fallbackState
)
