package badgekit

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// monospace measures every rune as one unit.
func monospace(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "Ada Lovelace", 20, []string{"Ada Lovelace"}},
		{"greedy", "the quick brown fox jumps", 10, []string{"the quick", "brown fox", "jumps"}},
		{"collapses spaces", "a   b", 10, []string{"a b"}},
		{"paragraphs", "one\n\ntwo", 10, []string{"one", "", "two"}},
		{"long word split", "Supercalifragilistic", 8, []string{"Supercal", "ifragili", "stic"}},
		{"long word after short", "an Analytical", 5, []string{"an", "Analy", "tical"}},
		{"empty", "", 10, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(monospace, tt.text, tt.width)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("wrapText mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWrapTextNeverExceedsWidth(t *testing.T) {
	text := strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit ", 5) +
		"Pneumonoultramicroscopicsilicovolcanoconiosis ok"
	for width := 1.0; width <= 30; width++ {
		for _, line := range wrapText(monospace, text, width) {
			if monospace(line) > width {
				t.Fatalf("width %v: line %q is %v wide", width, line, monospace(line))
			}
		}
	}
}

func TestWrapTextSingleRuneWiderThanBox(t *testing.T) {
	wide := func(string) float64 { return 100 }
	got := wrapText(wide, "W", 10)
	if diff := cmp.Diff([]string{"W"}, got); diff != "" {
		t.Errorf("wrapText mismatch (-want +got):\n%s", diff)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000", Black},
		{"#FFFFFF", White},
		{"#336699", Color{R: 0x33, G: 0x66, B: 0x99}},
		{"#33669900", Transparent},
		{"#336699ff", Color{R: 0x33, G: 0x66, B: 0x99}},
		{"rgb(10, 20, 30)", Color{R: 10, G: 20, B: 30}},
		{"rgba(10,20,30,0)", Transparent},
		{"Navy", Color{R: 0, G: 0, B: 128}},
		{"transparent", Transparent},
		{"", Transparent},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"#12", "#ggg", "rgb(1,2)", "rgb(1,2,300)", "blurple"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) succeeded", bad)
		}
	}
	if got := colorOr("blurple", White); got != White {
		t.Errorf("colorOr fallback = %+v", got)
	}
}
