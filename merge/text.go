package merge

import (
	"sort"

	"github.com/SUGAM-ARORA/pdftable/model"
)

// EpsilonBaseline is the y-tolerance under which two fragments are
// considered to sit on the same baseline.
const EpsilonBaseline = 2.0

// MaxAdjacencyFactor bounds the horizontal gap that still counts as
// "adjacent", as a fraction of the left fragment's font size.
const MaxAdjacencyFactor = 0.3

// Text sorts fragments by descending y then ascending x and merges
// consecutive same-baseline, horizontally-adjacent, same-font runs
// into single TextElements. Text is concatenated verbatim: PDF content
// streams already embed the whitespace between words as part of the
// fragment text, so no separator is inserted here.
func Text(fragments []model.TextFragment) []model.TextElement {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Origin.Y != sorted[j].Origin.Y {
			return sorted[i].Origin.Y > sorted[j].Origin.Y
		}
		return sorted[i].Origin.X < sorted[j].Origin.X
	})

	elements := make([]model.TextElement, 0, len(sorted))
	cur := toElement(sorted[0])

	for _, f := range sorted[1:] {
		if continuesRun(cur, f) {
			cur.Text += f.Text
			cur.Width = (f.Origin.X + f.AdvanceWidth) - cur.Origin.X
			continue
		}
		elements = append(elements, cur)
		cur = toElement(f)
	}
	elements = append(elements, cur)

	return elements
}

func toElement(f model.TextFragment) model.TextElement {
	return model.TextElement{
		Text:             f.Text,
		Origin:           f.Origin,
		Width:            f.AdvanceWidth,
		FontSize:         f.FontSize,
		FontResourceName: f.FontResourceName,
	}
}

// continuesRun reports whether fragment f extends the in-progress
// element cur: same baseline, non-overlapping adjacency within
// MaxAdjacencyFactor × cur's font size, and a matching font resource
// and size.
func continuesRun(cur model.TextElement, f model.TextFragment) bool {
	if cur.FontResourceName != f.FontResourceName || cur.FontSize != f.FontSize {
		return false
	}
	dy := cur.Origin.Y - f.Origin.Y
	if dy < 0 {
		dy = -dy
	}
	if dy >= EpsilonBaseline {
		return false
	}
	gap := f.Origin.X - (cur.Origin.X + cur.Width)
	if gap < 0 {
		return false
	}
	return gap < MaxAdjacencyFactor*cur.FontSize
}
