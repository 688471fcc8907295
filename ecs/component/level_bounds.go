package component

// LevelBounds stores the kill plane of the current level.
type LevelBounds struct {
	Name  string
	KillY float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
