package services

import (
	"regexp"
	"strings"
)

var (
	residentOnlyMarker = regexp.MustCompile(`(?i)##RESIDENTONLY`)
	displayMessageRe   = regexp.MustCompile(`(?s)%%(.+?)%%`)
	collapseSpaces     = regexp.MustCompile(`\s+`)
	closedKeywords     = []string{"full", "closed", "private", "event", "reserved"}
)

// Closeout is what a period name says about who may book it.
type Closeout struct {
	ResidentOnly   bool
	DisplayMessage *string
	CleanName      string
}

type CloseoutDefaults struct {
	Message string // may contain {phone}
	Phone   string
}

// ParseCloseout reads ##RESIDENTONLY and %%message%% markers out of a period name.
func ParseCloseout(name string, d CloseoutDefaults) Closeout {
	out := Closeout{}

	if residentOnlyMarker.MatchString(name) {
		out.ResidentOnly = true
		name = residentOnlyMarker.ReplaceAllString(name, "")
	}

	if m := displayMessageRe.FindStringSubmatch(name); m != nil {
		msg := strings.TrimSpace(m[1])
		out.DisplayMessage = &msg
		name = displayMessageRe.ReplaceAllString(name, "")
	}

	out.CleanName = strings.TrimSpace(collapseSpaces.ReplaceAllString(name, " "))

	if out.DisplayMessage == nil && (out.ResidentOnly || looksClosed(out.CleanName)) {
		msg := strings.ReplaceAll(d.Message, "{phone}", d.Phone)
		out.DisplayMessage = &msg
	}
	return out
}

func looksClosed(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range closedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
