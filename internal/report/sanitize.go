package report

import "strings"

// Leading decorations the workflow likes to put on action items. The emoji
// variants appear both with and without the variation selector.
var listMarkers = []string{"✅", "☑️", "✔️", "☑", "✔", "-", "*", "·"}

// SanitizeAction strips a single leading list marker and any residual
// markdown emphasis from an action line. Lines that reduce to the empty
// string are dropped by the caller, not rendered.
func SanitizeAction(line string) string {
	for _, m := range listMarkers {
		if strings.HasPrefix(line, m) {
			line = strings.TrimLeft(line[len(m):], " \t")
			break
		}
	}
	line = strings.ReplaceAll(line, "*", "")
	return strings.TrimSpace(line)
}
