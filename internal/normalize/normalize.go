// Package normalize canonicalizes question text before it is compared.
package normalize

import (
	"regexp"
	"strings"
)

// imageRefRegex matches an embedded markdown image reference such as ![plot](data:...).
var imageRefRegex = regexp.MustCompile(`!\[.*\]\(.*\)`)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines splits s at "\n", "\r\n" and a lone "\r". A trailing line break
// does not start an empty final line, and the empty string has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = lineBreaks.Replace(s)
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Text drops lines that embed an image, trims the result and lower-cases it.
func Text(s string) string {
	lines := SplitLines(s)

	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if imageRefRegex.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.ToLower(strings.TrimSpace(strings.Join(kept, "\n")))
}
