package core

import (
	"regexp"
	"strings"
)

var (
	digitRun   = regexp.MustCompile(`\d+`)
	numPair    = regexp.MustCompile(`NUM[.,]NUM`)
	punct      = regexp.MustCompile(`([?.!,¿])`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes review text into a whitespace-delimited token
// stream. The steps run in a fixed order: lowercase and trim, digit runs
// replaced by a NUM token, collapse of the NUM.NUM / NUM,NUM pairs left
// behind by decimal numbers, spacing around sentence punctuation, and
// whitespace collapse. Pure and deterministic; safe on any string input.
func Normalize(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))

	s = digitRun.ReplaceAllString(s, "NUM")

	// "3.500,00" becomes NUM.NUM,NUM above and a single pass leaves
	// NUM,NUM behind, so repeat until the pattern is gone.
	for {
		collapsed := numPair.ReplaceAllString(s, "NUM")
		if collapsed == s {
			break
		}
		s = collapsed
	}

	// "he is a boy." => "he is a boy ."
	s = punct.ReplaceAllString(s, " $1 ")
	s = whitespace.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
