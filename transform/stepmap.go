package transform

// Span records that OldSize positions starting at Start (in the old
// document) were replaced by NewSize positions.
type Span struct {
	Start   int
	OldSize int
	NewSize int
}

// StepMap describes how one step moved positions. Spans are sorted by Start
// and do not overlap.
type StepMap struct {
	spans []Span
}

// NewStepMap builds a map from sorted spans. Spans that replace nothing with
// nothing are dropped.
func NewStepMap(spans ...Span) StepMap {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.OldSize == 0 && s.NewSize == 0 {
			continue
		}
		out = append(out, s)
	}
	return StepMap{spans: out}
}

// Spans returns a copy of the map's spans.
func (m StepMap) Spans() []Span { return append([]Span(nil), m.spans...) }

// Identity reports whether the map moves no position.
func (m StepMap) Identity() bool { return len(m.spans) == 0 }

// MapResult is a mapped position. Deleted is set when the content next to
// the position on the assoc side was removed.
type MapResult struct {
	Pos     int
	Deleted bool
}

// Map maps pos. assoc < 0 keeps a position at an insertion point before the
// inserted content; assoc > 0 moves it after.
func (m StepMap) Map(pos, assoc int) int { return m.MapResult(pos, assoc).Pos }

func (m StepMap) MapResult(pos, assoc int) MapResult {
	diff := 0
	for _, s := range m.spans {
		if s.Start > pos {
			break
		}
		end := s.Start + s.OldSize
		if pos <= end {
			side := assoc
			switch {
			case s.OldSize == 0:
			case pos == s.Start:
				side = -1
			case pos == end:
				side = 1
			}
			res := s.Start + diff
			if side >= 0 {
				res += s.NewSize
			}
			kept := s.Start
			if assoc >= 0 {
				kept = end
			}
			return MapResult{Pos: res, Deleted: s.OldSize > 0 && pos != kept}
		}
		diff += s.NewSize - s.OldSize
	}
	return MapResult{Pos: pos + diff}
}
