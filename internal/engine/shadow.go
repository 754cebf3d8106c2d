package engine

// ShadowSet is the set of cells the flood must skip.
// It is derived from barrier geometry and never persisted.
type ShadowSet struct {
	w, h  int
	cells []bool
	n     int
}

// Contains reports whether (x, y) is occluded. Coordinates off the grid are not.
func (s ShadowSet) Contains(x, y int) bool {
	if x < 0 || x >= s.w || y < 0 || y >= s.h {
		return false
	}
	return s.cells[y*s.w+x]
}

// Len returns the number of occluded cells.
func (s ShadowSet) Len() int {
	return s.n
}

func (s *ShadowSet) add(x, y int) {
	i := y*s.w + x
	if !s.cells[i] {
		s.cells[i] = true
		s.n++
	}
}

// OccludedWidth returns the shadow width of b at the given distance, measured
// in rows from the barrier's top edge.
//
// Strong barriers lose one cell per side every two rows, weak barriers every row.
func OccludedWidth(b Barrier, distance int) int {
	var shrink int
	if b.Strength == StrengthWeak {
		shrink = max(0, distance-1) * 2
	} else {
		shrink = max(0, (distance-1)/2) * 2
	}
	return max(0, b.Rect.W-shrink)
}

// ShadowSpan returns the half-open column range [start, end) shadowed by b on
// row. Rows at or above the barrier's bottom edge, and rows past the point the
// wedge closes, return an empty span.
func ShadowSpan(b Barrier, row int) (start, end int) {
	if row < b.Rect.Bottom() {
		return 0, 0
	}
	width := OccludedWidth(b, row-b.Rect.Y)
	if width == 0 {
		return 0, 0
	}
	start = b.Rect.X + (b.Rect.W-width)/2
	return start, start + width
}

// CastShadows computes the union of all barrier shadows on a w×h grid.
func CastShadows(barriers []Barrier, w, h int) ShadowSet {
	s := ShadowSet{w: w, h: h, cells: make([]bool, w*h)}
	for _, b := range barriers {
		for row := b.Rect.Bottom(); row < h; row++ {
			start, end := ShadowSpan(b, row)
			if start == end {
				break
			}
			for col := max(start, 0); col < min(end, w); col++ {
				s.add(col, row)
			}
		}
	}
	return s
}
