package combat

// PlacementPolicy decides, before each tick, whether the player places a unit
// and which archetype.
type PlacementPolicy interface {
	Next(w *World) (string, bool)
}

// RoundRobinPolicy cycles through a deck at a fixed interval, starting at
// the first tick.
type RoundRobinPolicy struct {
	Deck     []string
	Interval float64
	next     float64
	idx      int
}

func (rr *RoundRobinPolicy) Next(w *World) (string, bool) {
	if len(rr.Deck) == 0 || rr.Interval <= 0 {
		return "", false
	}
	if w.Now() < rr.next {
		return "", false
	}
	rr.next = w.Now() + rr.Interval
	name := rr.Deck[rr.idx%len(rr.Deck)]
	rr.idx++
	return name, true
}

// CappedPolicy defers to Inner only while the player has fewer than Max
// living units.
type CappedPolicy struct {
	Inner PlacementPolicy
	Max   int
}

func (cp *CappedPolicy) Next(w *World) (string, bool) {
	if cp.Max > 0 && w.LiveCount(Player) >= cp.Max {
		return "", false
	}
	return cp.Inner.Next(w)
}
