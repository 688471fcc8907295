package component

// TTL destroys its entity after Seconds of game time.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
