// Package interp interprets a tokenized content stream (spec §4.2): it
// maintains the graphics/text state stack and emits TextFragments and
// LineSegments in page user-space coordinates.
package interp

import "github.com/SUGAM-ARORA/pdftable/model"

// Frame is one graphics/text state stack frame (spec §3). Per spec,
// a single stack carries both graphics and text state — pushed and
// popped together by q/Q — rather than the two independently-scoped
// stacks a PDF renderer would use; this implementation follows the
// spec's contract exactly.
type Frame struct {
	CTM              model.Matrix
	TextMatrix       model.Matrix
	TextLineMatrix   model.Matrix
	FontResourceName string
	FontSize         float64
	Leading          float64
	StrokeWidth      float64
	Subpaths         [][]model.Point
}

func newFrame() Frame {
	return Frame{
		CTM:            model.Identity(),
		TextMatrix:     model.Identity(),
		TextLineMatrix: model.Identity(),
		StrokeWidth:    1.0,
	}
}

// clone returns a deep-enough copy of the frame: Subpaths is copied so
// mutating the new top of stack never aliases a popped frame's slice.
func (f Frame) clone() Frame {
	cp := f
	cp.Subpaths = make([][]model.Point, len(f.Subpaths))
	for i, sp := range f.Subpaths {
		cp.Subpaths[i] = append([]model.Point(nil), sp...)
	}
	return cp
}

// stateStack is the q/Q stack of Frames, always non-empty.
type stateStack struct {
	frames []Frame
}

func newStateStack() *stateStack {
	return &stateStack{frames: []Frame{newFrame()}}
}

func (s *stateStack) top() *Frame {
	return &s.frames[len(s.frames)-1]
}

// push duplicates the current top frame (the "q" operator).
func (s *stateStack) push() {
	s.frames = append(s.frames, s.top().clone())
}

// pop restores the previous frame (the "Q" operator). Popping past the
// initial frame is a no-op: an unbalanced Q in a malformed stream must
// not panic (spec §7, best-effort continuation).
func (s *stateStack) pop() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}
