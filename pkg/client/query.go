package client

import (
	"net/url"
	"strings"

	"github.com/naveenspark/sportex/pkg/domain"
)

// AthleteQuery encodes f as a query string without the leading "?".
//
// Parameters appear in a fixed order: sport, position, location,
// min_stat_key, min_stat_value. Empty fields are omitted, and the stat pair is
// written only when both halves are set.
func AthleteQuery(f domain.AthleteFilter) string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	if f.Sport != "" {
		add("sport", f.Sport)
	}
	if f.Position != "" {
		add("position", f.Position)
	}
	if f.Location != "" {
		add("location", f.Location)
	}
	if f.HasStatThreshold() {
		add("min_stat_key", f.StatKey)
		add("min_stat_value", f.StatValue)
	}
	return strings.Join(parts, "&")
}

// withQuery appends q to path when q is non-empty.
func withQuery(path, q string) string {
	if q == "" {
		return path
	}
	return path + "?" + q
}
