package ui

import (
	"math"

	"github.com/Monniasza/mlem"
)

// Navigation searches operate on one root's tree flattened in depth-first
// child order: parent before its children, siblings in list order. The
// search space is filtered to visible, selectable elements sharing the
// current selection's navigation group; with no selection, only ungrouped
// elements are considered.

// navCandidates appends the eligible elements of the subtree to dst in tab
// order. Hidden subtrees are pruned whole.
func navCandidates(e *Element, group string, dst []*Element) []*Element {
	if e.hidden {
		return dst
	}
	if e.CanBeSelected && e.autoNavGroup == group {
		dst = append(dst, e)
	}
	for _, c := range e.children {
		dst = navCandidates(c, group, dst)
	}
	return dst
}

func navGroupOf(current *Element) string {
	if current == nil {
		return ""
	}
	return current.autoNavGroup
}

// tabNextElement returns the element following (or, backward, preceding)
// the current selection in tab order. With no current selection it returns
// the first eligible element forward and the last backward. Walking past
// either end returns nil: the caller keeps the prior selection rather than
// wrapping around.
func tabNextElement(root *RootElement, current *Element, backward bool) *Element {
	list := acquireElementSlice(0)
	defer func() { releaseElementSlice(list) }()
	list = navCandidates(root.element, navGroupOf(current), list)
	if len(list) == 0 {
		return nil
	}

	if current == nil {
		if backward {
			return list[len(list)-1]
		}
		return list[0]
	}

	idx := -1
	for i, e := range list {
		if e == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		// The selection is no longer eligible (hidden, regrouped); restart.
		if backward {
			return list[len(list)-1]
		}
		return list[0]
	}

	if backward {
		idx--
	} else {
		idx++
	}
	if idx < 0 || idx >= len(list) {
		return nil
	}
	return list[idx]
}

// directionalNextElement picks the best neighbour of the current selection
// in the requested direction. Candidates more than 90° off the direction
// are excluded outright; among the rest, the score
//
//	(distance² + 1) × (angle/90° + 1)
//
// is minimized, preferring elements that are clearly "in that direction"
// over geometrically nearer ones off to the side. With no current
// selection, the first eligible element in tab order is returned whatever
// the direction. No candidate means no change (nil).
func directionalNextElement(root *RootElement, current *Element, dir mlem.Direction) *Element {
	list := acquireElementSlice(0)
	defer func() { releaseElementSlice(list) }()
	list = navCandidates(root.element, navGroupOf(current), list)
	if len(list) == 0 {
		return nil
	}
	if current == nil {
		return list[0]
	}

	origin := current.area.Center()
	want := dir.Offset()

	var best *Element
	bestScore := math.Inf(1)
	for _, cand := range list {
		if cand == current {
			continue
		}
		v := cand.area.Center().Sub(origin)
		dist := float64(v.Length())

		// Angular deviation between the candidate vector and the requested
		// direction, in degrees. A candidate whose center coincides with the
		// selection counts as dead ahead at zero distance, so exactly
		// overlapping elements stay reachable.
		var angle float64
		if dist > 0 {
			dot := float64(v.X*want.X+v.Y*want.Y) / dist
			if dot < -1 {
				dot = -1
			} else if dot > 1 {
				dot = 1
			}
			angle = math.Acos(dot) * 180 / math.Pi
			if angle > 90 {
				continue
			}
		}

		score := (dist*dist + 1) * (angle/90 + 1)
		if score < bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}
