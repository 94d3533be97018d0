package transform

import "testing"

const fuzzDocSize = 64

type fuzzEdit struct {
	start, oldSize, newSize int
}

// decodeMappingFuzzCase turns data into replace spans, three bytes per edit.
// Each span is valid for the document size left by the edits before it.
func decodeMappingFuzzCase(data []byte) ([]fuzzEdit, int) {
	size := fuzzDocSize
	var edits []fuzzEdit
	for i := 0; i+2 < len(data) && len(edits) < 16; i += 3 {
		start := int(data[i]) % (size + 1)
		oldSize := min(int(data[i+1])%12, size-start)
		newSize := int(data[i+2]) % 12
		if oldSize == 0 && newSize == 0 {
			continue
		}
		edits = append(edits, fuzzEdit{start: start, oldSize: oldSize, newSize: newSize})
		size += newSize - oldSize
	}
	return edits, size
}

func buildMappingFuzzMapping(edits []fuzzEdit) *Mapping {
	m := &Mapping{}
	for _, e := range edits {
		m.AppendMap(NewStepMap(Span{Start: e.start, OldSize: e.oldSize, NewSize: e.newSize}))
	}
	return m
}

func FuzzMapping_MapRange(f *testing.F) {
	seeds := [][]byte{
		{},
		{0, 0, 5},
		{5, 11, 0},
		{10, 10, 3, 0, 0, 7},
		{255, 1, 2, 3, 4, 5, 6, 7, 8},
		[]byte("mapping-seed"),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		edits, size := decodeMappingFuzzCase(data)
		m := buildMappingFuzzMapping(edits)

		prev := map[int]int{-1: -1, 1: -1}
		for pos := 0; pos <= fuzzDocSize; pos++ {
			for _, assoc := range []int{-1, 1} {
				got := m.Map(pos, assoc)
				if got < 0 || got > size {
					t.Fatalf("Map(%d,%d)=%d outside [0,%d], edits=%+v", pos, assoc, got, size, edits)
				}
				if got < prev[assoc] {
					t.Fatalf("Map(%d,%d)=%d before Map(%d)=%d, edits=%+v", pos, assoc, got, pos-1, prev[assoc], edits)
				}
				prev[assoc] = got
			}
		}

		for from := 0; from < fuzzDocSize; from += 3 {
			for to := from + 1; to <= fuzzDocSize; to += 5 {
				nf, nt, ok := m.MapRange(from, to)
				if ok && (nf < 0 || nt > size || nf >= nt) {
					t.Fatalf("MapRange(%d,%d)=%d,%d,true in size %d, edits=%+v", from, to, nf, nt, size, edits)
				}
			}
		}

		if len(data) < 2 {
			return
		}
		at, n := int(data[0])%10, int(data[1])%20+1
		shift := NewMapping(NewStepMap(Span{Start: at, NewSize: n}))
		if from, to, ok := shift.MapRange(10, 20); !ok || from != 10+n || to != 20+n {
			t.Fatalf("insert %d at %d: MapRange(10,20)=%d,%d,%v, want %d,%d,true", n, at, from, to, ok, 10+n, 20+n)
		}
		cover := NewMapping(NewStepMap(Span{Start: at, OldSize: 20 - at + int(data[1])%5}))
		if _, _, ok := cover.MapRange(10, 20); ok {
			t.Fatalf("delete from %d over [10,20) kept the range", at)
		}
	})
}
