package dial

// Gate is the interaction lock held while the dial returns to rest.
type Gate struct {
	locked  bool
	cycles  int
	onShift func(locked bool)
}

// Locked reports whether pointer interaction is suppressed.
func (g *Gate) Locked() bool { return g.locked }

// Cycles counts completed lock/unlock pairs.
func (g *Gate) Cycles() int { return g.cycles }

func (g *Gate) lock() {
	if g.locked {
		return
	}
	g.locked = true
	if g.onShift != nil {
		g.onShift(true)
	}
}

func (g *Gate) unlock() {
	if !g.locked {
		return
	}
	g.locked = false
	g.cycles++
	if g.onShift != nil {
		g.onShift(false)
	}
}
