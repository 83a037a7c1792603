package combat

type Vec2 struct{ X, Y float64 }

// Box is an axis-aligned footprint anchored at its top-left corner.
type Box struct {
	Pos    Vec2
	Width  float64
	Height float64
}

func (b Box) Left() float64  { return b.Pos.X }
func (b Box) Right() float64 { return b.Pos.X + b.Width }

// OverlapsX reports whether the two footprints share any lane interval.
// Touching edges do not overlap.
func (b Box) OverlapsX(o Box) bool {
	return b.Left() < o.Right() && o.Left() < b.Right()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
