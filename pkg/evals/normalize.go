package evals

import (
	"net/url"
	"strings"
)

// maxDecodeRounds bounds the fixed-point decoding loop. Identifiers arrive
// through nested routing layers and are sometimes encoded two or three times;
// five rounds is comfortably past anything observed.
const maxDecodeRounds = 5

// truncation markers for garbage concatenated onto an identifier by upstream
// URL construction. An embedded URL only counts when it is not the whole
// string, so an id is never truncated to empty by the scheme markers.
var trailingMarkers = []string{"?", "#"}
var embeddedURLMarkers = []string{"http://", "https://"}

// NormalizeID repeatedly percent-decodes an identifier until it stops
// changing, then strips trailing URL debris. Decoding failures are expected
// input, not errors: a malformed escape simply ends the loop and the last
// good value is kept. NormalizeID never fails and is idempotent.
func NormalizeID(raw string) string {
	s := raw
	for i := 0; i < maxDecodeRounds; i++ {
		decoded, err := url.PathUnescape(s)
		if err != nil || decoded == s {
			break
		}
		s = decoded
	}
	for _, m := range trailingMarkers {
		if idx := strings.Index(s, m); idx >= 0 {
			s = s[:idx]
		}
	}
	for _, m := range embeddedURLMarkers {
		if idx := strings.Index(s, m); idx > 0 {
			s = s[:idx]
		}
	}
	return s
}
