package record

import "strings"

// Delimiter separates items in multi-valued source fields (authors, tags).
const Delimiter = ";"

// SplitList splits a delimiter-separated string into trimmed, non-empty,
// deduplicated tokens, preserving first-occurrence order. Empty input
// yields an empty list.
func SplitList(s string) []string {
	if s == "" {
		return []string{}
	}

	seen := make(map[string]struct{})
	tokens := []string{}
	for _, part := range strings.Split(s, Delimiter) {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// MergeTags returns the union of two independently sourced tag strings with
// duplicates removed regardless of source. Callers must not rely on the
// resulting order.
func MergeTags(manual, auto string) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, s := range []string{manual, auto} {
		for _, tag := range SplitList(s) {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
