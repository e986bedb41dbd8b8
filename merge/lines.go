package merge

import (
	"sort"

	"github.com/SUGAM-ARORA/pdftable/model"
)

// Lines partitions classified segments into horizontal and vertical
// sets, groups each set by its axis coordinate within model.EpsilonLine,
// and merges overlapping or touching spans within a group into a
// single RuledLine. Segments with OrientationNone (already filtered by
// the interpreter) are ignored here too, defensively.
func Lines(segments []model.LineSegment) []model.RuledLine {
	var horizontal, vertical []model.LineSegment
	for _, s := range segments {
		switch s.Classify() {
		case model.OrientationHorizontal:
			horizontal = append(horizontal, s)
		case model.OrientationVertical:
			vertical = append(vertical, s)
		}
	}

	var out []model.RuledLine
	out = append(out, coalesce(horizontal, model.OrientationHorizontal)...)
	out = append(out, coalesce(vertical, model.OrientationVertical)...)
	return out
}

// coalesce groups same-orientation segments by axis coordinate and
// merges overlapping/touching spans within each group.
func coalesce(segments []model.LineSegment, orientation model.Orientation) []model.RuledLine {
	if len(segments) == 0 {
		return nil
	}

	type span struct {
		axis   float64
		lo, hi float64
		stroke float64
	}
	spans := make([]span, len(segments))
	for i, s := range segments {
		var axis, lo, hi float64
		if orientation == model.OrientationHorizontal {
			axis = (s.Start.Y + s.End.Y) / 2
			lo, hi = s.Start.X, s.End.X
		} else {
			axis = (s.Start.X + s.End.X) / 2
			lo, hi = s.Start.Y, s.End.Y
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		spans[i] = span{axis: axis, lo: lo, hi: hi, stroke: s.StrokeWidth}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].axis < spans[j].axis })

	// Chain-cluster by axis coordinate: consecutive spans within
	// EpsilonLine of the running group axis join the same group.
	var groups [][]span
	group := []span{spans[0]}
	groupAxis := spans[0].axis
	for _, sp := range spans[1:] {
		if sp.axis-groupAxis < model.EpsilonLine {
			group = append(group, sp)
		} else {
			groups = append(groups, group)
			group = []span{sp}
		}
		groupAxis = sp.axis
	}
	groups = append(groups, group)

	var lines []model.RuledLine
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool { return g[i].lo < g[j].lo })

		axisSum := 0.0
		for _, sp := range g {
			axisSum += sp.axis
		}
		avgAxis := axisSum / float64(len(g))

		cur := g[0]
		for _, sp := range g[1:] {
			if sp.lo <= cur.hi+model.EpsilonLine {
				if sp.hi > cur.hi {
					cur.hi = sp.hi
				}
				if sp.stroke > cur.stroke {
					cur.stroke = sp.stroke
				}
				continue
			}
			lines = append(lines, model.RuledLine{
				Orientation: orientation,
				Axis:        avgAxis,
				Lo:          cur.lo,
				Hi:          cur.hi,
				StrokeWidth: cur.stroke,
			})
			cur = sp
		}
		lines = append(lines, model.RuledLine{
			Orientation: orientation,
			Axis:        avgAxis,
			Lo:          cur.lo,
			Hi:          cur.hi,
			StrokeWidth: cur.stroke,
		})
	}

	return lines
}
