package grapheme

import "testing"

const family = "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"

func TestSplit_MultiRuneClusters(t *testing.T) {
	text := "a" + "é" + family + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "é" {
		t.Fatalf("split[1]=%q, want %q", got[1], "é")
	}
	if got[2] != family {
		t.Fatalf("split[2]=%q, want family emoji", got[2])
	}
	if Split("") != nil {
		t.Fatalf("split of empty text should be nil")
	}
}

func TestWidth(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{text: "", want: 0},
		{text: "abc", want: 3},
		{text: "é", want: 1},
		{text: "제목", want: 4},
		{text: family, want: 2},
	}
	for _, tc := range cases {
		if got := Width(tc.text); got != tc.want {
			t.Fatalf("Width(%q)=%d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got, want := Truncate("hello", 5), "hello"; got != want {
		t.Fatalf("fits: got %q, want %q", got, want)
	}
	if got, want := Truncate("hello world", 6), "hello…"; got != want {
		t.Fatalf("cut: got %q, want %q", got, want)
	}
	// A wide cluster that would overflow is dropped whole.
	if got, want := Truncate("가나다", 4), "가…"; got != want {
		t.Fatalf("wide: got %q, want %q", got, want)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("zero width: got %q", got)
	}
}

func TestPad(t *testing.T) {
	cases := []struct {
		align Align
		want  string
	}{
		{align: AlignLeft, want: "ab   "},
		{align: AlignRight, want: "   ab"},
		{align: AlignCenter, want: " ab  "},
	}
	for _, tc := range cases {
		if got := Pad("ab", 2, 5, tc.align); got != tc.want {
			t.Fatalf("Pad(%v)=%q, want %q", tc.align, got, tc.want)
		}
	}
	if got := Pad("toolong", 7, 3, AlignLeft); got != "toolong" {
		t.Fatalf("overflow: got %q", got)
	}
}
