package email

import "regexp"

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags derives a plain-text fallback by removing every <...> token.
// It is not an HTML-to-text converter: text such as "a <b and c> d" loses
// the bracketed span even when it is not markup.
func StripTags(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}
