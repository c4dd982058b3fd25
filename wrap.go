package badgekit

import "strings"

// wrapText breaks text into lines no wider than maxWidth using greedy word
// filling. Newlines start a new paragraph. A word wider than maxWidth is
// split between runes; only a single rune wider than maxWidth can exceed it.
func wrapText(measure func(string) float64, text string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range words {
			for _, piece := range splitWord(measure, word, maxWidth) {
				candidate := piece
				if line != "" {
					candidate = line + " " + piece
				}
				if measure(candidate) <= maxWidth {
					line = candidate
					continue
				}
				if line != "" {
					lines = append(lines, line)
				}
				line = piece
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func splitWord(measure func(string) float64, word string, maxWidth float64) []string {
	if measure(word) <= maxWidth {
		return []string{word}
	}
	var pieces []string
	var cur []rune
	for _, r := range word {
		next := append(cur, r)
		if len(cur) > 0 && measure(string(next)) > maxWidth {
			pieces = append(pieces, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	if len(cur) > 0 {
		pieces = append(pieces, string(cur))
	}
	return pieces
}
