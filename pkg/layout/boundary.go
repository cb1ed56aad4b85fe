package layout

// boundarySegment is one vertical band of a Boundary's left/right envelope.
type boundarySegment struct {
	Y     Dimensions
	Left  float64
	Right float64
}

// Boundary tracks, for a subtree being laid out, the outermost left/right X
// as a function of Y: a set of vertical bands, each with its own left/right
// extent. Strategies consult a Boundary instead of raw rectangles to find
// the minimum horizontal offset that keeps a new sibling subtree from
// colliding with ones already placed, in O(row count) per query.
type Boundary struct {
	segments []boundarySegment
}

// Reset empties the boundary, returning it to its just-acquired-from-pool
// state.
func (b *Boundary) Reset() {
	b.segments = b.segments[:0]
}

// Merge extends the envelope with r. Merging the empty rect is a no-op.
func (b *Boundary) Merge(r Rect) {
	if r.IsEmpty() {
		return
	}
	b.segments = append(b.segments, boundarySegment{
		Y:     r.VDimensions(),
		Left:  r.Left(),
		Right: r.Right(),
	})
}

// MergeFrom unions another boundary's bands into b.
func (b *Boundary) MergeFrom(o *Boundary) {
	if o == nil {
		return
	}
	b.segments = append(b.segments, o.segments...)
}

// BoundingRect returns the smallest rect enclosing every band in b.
func (b *Boundary) BoundingRect() Rect {
	result := EmptyRect()
	for _, s := range b.segments {
		result = result.Union(Rect{
			TopLeft: Point{X: s.Left, Y: s.Y.From},
			Size:    Size{Width: s.Right - s.Left, Height: s.Y.Length()},
		})
	}
	return result
}

// ReloadFromBranch clears b, then re-merges every affects-layout,
// non-special node's rect under root, in child-first (depth-first) order.
// Synthetic spacers are deliberately excluded: this recomputation backs
// the visual branch_exterior a caller reads out of NodeLayoutInfo, and
// spacers are connector-routing bookkeeping, not chart content.
func (b *Boundary) ReloadFromBranch(root *TreeNode) {
	b.Reset()
	root.ChildFirst(func(n *TreeNode) bool {
		if n.Box.AffectsLayout && !n.Box.IsSpecial {
			b.Merge(n.Rect())
		}
		return true
	})
}

// MinOffsetToClear returns the minimum dx >= 0 that must be added to every
// X coordinate of candidate so that, once shifted, candidate no longer
// overlaps (within spacing) any band of b that shares a Y range with it.
func (b *Boundary) MinOffsetToClear(candidate *Boundary, spacing float64) float64 {
	offset := 0.0
	for _, cs := range candidate.segments {
		for _, s := range b.segments {
			if !cs.Y.Overlaps(s.Y) {
				continue
			}
			needed := s.Right + spacing - cs.Left
			if needed > offset {
				offset = needed
			}
		}
	}
	return offset
}

// IsEmpty reports whether the boundary has no bands.
func (b *Boundary) IsEmpty() bool {
	return len(b.segments) == 0
}
