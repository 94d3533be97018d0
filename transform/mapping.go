package transform

// Mapping is the composition of the step maps of one or more transactions,
// in application order. The zero value is the identity mapping.
type Mapping struct {
	maps []StepMap
}

// NewMapping returns a mapping over maps.
func NewMapping(maps ...StepMap) *Mapping {
	return &Mapping{maps: append([]StepMap(nil), maps...)}
}

// Maps returns the step maps in order.
func (m *Mapping) Maps() []StepMap {
	if m == nil {
		return nil
	}
	return append([]StepMap(nil), m.maps...)
}

// AppendMap adds a step map to the end of the mapping.
func (m *Mapping) AppendMap(sm StepMap) {
	m.maps = append(m.maps, sm)
}

// AppendMapping adds all maps of o after m's.
func (m *Mapping) AppendMapping(o *Mapping) {
	if o == nil {
		return
	}
	m.maps = append(m.maps, o.maps...)
}

// Identity reports whether no map in m moves any position.
func (m *Mapping) Identity() bool {
	if m == nil {
		return true
	}
	for _, sm := range m.maps {
		if !sm.Identity() {
			return false
		}
	}
	return true
}

func (m *Mapping) Map(pos, assoc int) int { return m.MapResult(pos, assoc).Pos }

// MapResult maps pos through every step. Deleted is set if any step deleted
// the position.
func (m *Mapping) MapResult(pos, assoc int) MapResult {
	out := MapResult{Pos: pos}
	if m == nil {
		return out
	}
	for _, sm := range m.maps {
		r := sm.MapResult(out.Pos, assoc)
		out.Pos = r.Pos
		out.Deleted = out.Deleted || r.Deleted
	}
	return out
}

// MapRange maps the half-open range [from, to) so that content inserted at
// either edge stays outside it. ok is false when the range collapsed.
func (m *Mapping) MapRange(from, to int) (newFrom, newTo int, ok bool) {
	newFrom = m.Map(from, 1)
	newTo = m.Map(to, -1)
	return newFrom, newTo, newFrom < newTo
}
