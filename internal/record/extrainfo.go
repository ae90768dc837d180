package record

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// extraValueKind describes how a marker's value is read.
type extraValueKind int

const (
	extraInt  extraValueKind = iota // non-negative integer
	extraLine                       // remainder of the line, trimmed
)

// extraMarkers is the table of recognized "name: value" markers embedded in
// the free-text Extra column. Unknown markers are ignored, not erred.
var extraMarkers = []struct {
	marker string
	field  string
	kind   extraValueKind
}{
	{"download", "download_count", extraInt},
	{"CNKICite", "citation_count", extraInt},
	{"major", "major_field", extraLine},
}

// ParseExtra extracts recognized facts from the free-text Extra column.
// Each marker is recognized independently; a malformed value drops that
// fact only, never the whole parse. Empty input yields an empty map.
func (n *Normalizer) ParseExtra(extra string) map[string]any {
	facts := make(map[string]any)
	if extra == "" {
		return facts
	}

	for _, m := range extraMarkers {
		raw, ok := markerValue(extra, m.marker)
		if !ok {
			continue
		}
		switch m.kind {
		case extraInt:
			v, err := strconv.Atoi(leadingDigits(raw))
			if err != nil {
				n.logger.Warn("malformed extra-info value, skipping fact",
					zap.String("marker", m.marker),
					zap.String("value", raw))
				continue
			}
			facts[m.field] = v
		case extraLine:
			if raw != "" {
				facts[m.field] = raw
			}
		}
	}

	return facts
}

// markerValue finds "marker:" in s and returns the remainder of that line,
// trimmed. The second return is false when the marker is absent.
func markerValue(s, marker string) (string, bool) {
	idx := strings.Index(s, marker+":")
	if idx < 0 {
		return "", false
	}
	rest := s[idx+len(marker)+1:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest), true
}

// leadingDigits returns the leading digit run of s, so "120 times" parses
// the same way as "120".
func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}
