// title.go — Listing title from a product folder name.
package mockup

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TitleFromFolder derives a listing title from a folder name: dashes,
// underscores and dots become spaces, runs of spaces collapse, and each word
// is title-cased. "red-floral_seamless" becomes "Red Floral Seamless".
func TitleFromFolder(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.':
			return ' '
		}
		return r
	}, name)

	words := strings.Fields(mapped)
	if len(words) == 0 {
		return ""
	}
	return titleCaser.String(strings.ToLower(strings.Join(words, " ")))
}
