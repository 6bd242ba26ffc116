package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/naveenspark/sportex/pkg/domain"
)

// formatStart renders an event start in local time, or "TBA" when unset.
func formatStart(ts domain.Timestamp) string {
	if ts.IsZero() {
		return "TBA"
	}
	return ts.Local().Format("Mon Jan 2 2006, 15:04")
}

// formatStat renders a stat for a card, or "-" when the athlete has none.
func formatStat(a domain.Athlete, key string) string {
	v, ok := a.Stat(key)
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// joinMeta joins the non-empty parts with " • ".
func joinMeta(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " • ")
}

// errorLine renders an error for the body of a view.
func errorLine(prefix string, err error) string {
	return " " + errorStyle.Render(fmt.Sprintf("%s: %v", prefix, err))
}
