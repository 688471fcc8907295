package component

type Platform struct {
	Width  float64
	Height float64
}

var PlatformComponent = NewComponent[Platform]()
