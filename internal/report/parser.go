package report

import (
	"regexp"
	"strings"
)

// Section markers emitted by the workflow. The wording of these three
// headings is the only part of the remote output treated as stable; heading
// level, order, and surrounding decoration are not.
const (
	markerSubtext  = "潜台词解码"
	markerActions  = "行动建议"
	markerResponse = "建议回复"
)

// Report is the decoded result rendered by the result view.
type Report struct {
	Subtext  string
	Actions  []string
	Response string

	// Degraded is set when no usable section markers were found and the
	// entire raw text was placed into Subtext instead.
	Degraded bool
}

var (
	bulletPrefix  = regexp.MustCompile(`^[-*]\s*|^\d+\.\s*`)
	headingPrefix = regexp.MustCompile(`(?m)^#+\s+`)
)

// Parse splits raw workflow output into subtext, action items and a suggested
// reply. It never fails: sections without a recognized marker are skipped,
// and if neither subtext nor reply could be found the whole input becomes the
// subtext so nothing is silently dropped. When a marker appears in more than
// one section, the last occurrence wins.
func Parse(raw string) Report {
	var r Report
	if raw == "" {
		return r
	}

	for _, section := range strings.Split(raw, "### ") {
		section = strings.TrimSpace(section)
		switch {
		case strings.Contains(section, markerSubtext):
			r.Subtext = sectionBody(section, markerSubtext)
		case strings.Contains(section, markerActions):
			r.Actions = splitActions(sectionBody(section, markerActions))
		case strings.Contains(section, markerResponse):
			r.Response = sectionBody(section, markerResponse)
		}
	}

	// Nested markdown headings inside the subtext confuse the card layout.
	if r.Subtext != "" {
		r.Subtext = strings.TrimSpace(headingPrefix.ReplaceAllString(r.Subtext, ""))
	}

	if r.Subtext == "" && r.Response == "" {
		r.Subtext = raw
		r.Degraded = true
	}

	return r
}

// sectionBody drops everything up to and including the marker, leaving the
// trimmed body of the section.
func sectionBody(section, marker string) string {
	idx := strings.Index(section, marker)
	return strings.TrimSpace(section[idx+len(marker):])
}

func splitActions(body string) []string {
	var actions []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		if line != "" {
			actions = append(actions, line)
		}
	}
	return actions
}
