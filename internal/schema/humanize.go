package schema

import "strings"

// HumanizeKey renders a kebab-case field key as a display header:
// "business-name" -> "Business Name". The updater relies on KeyForHeader
// exactly inverting this, so keep the two in lockstep.
func HumanizeKey(key string) string {
	words := strings.Split(key, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// KeyForHeader maps a display header back to its field key:
// "Business Name" -> "business-name".
func KeyForHeader(header string) string {
	return strings.ReplaceAll(strings.ToLower(header), " ", "-")
}
