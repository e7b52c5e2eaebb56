package render

import (
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kk-code-lab/hnterm/internal/remote"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numbers groups thousands the way the feed's audience reads them.
var numbers = message.NewPrinter(language.English)

func formatCount(n int) string {
	return numbers.Sprintf("%d", n)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return formatCount(n) + " " + one
	}
	return formatCount(n) + " " + many
}

// formatDomain returns the host of rawURL without a leading "www.".
func formatDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

func formatAge(created, now time.Time) string {
	if created.IsZero() {
		return ""
	}
	if created.After(now) {
		return "just now"
	}
	return humanize.RelTime(created, now, "ago", "from now")
}

// formatItemMeta builds "123 points by pg 3 hours ago | 45 comments".
func formatItemMeta(it remote.Item, now time.Time) string {
	parts := []string{plural(it.Score, "point", "points")}
	if it.Author != "" {
		parts = append(parts, "by "+it.Author)
	}
	if age := formatAge(it.CreatedAt, now); age != "" {
		parts = append(parts, age)
	}
	meta := strings.Join(parts, " ")
	if it.Kind == "job" {
		return meta
	}
	return meta + " | " + plural(it.Descendants, "comment", "comments")
}

// formatFeedCounts describes how much of the ranking is on screen.
func formatFeedCounts(shown, total, cached int) string {
	if total == 0 {
		return ""
	}
	return numbers.Sprintf("%d of %d stories · %d cached", shown, total, cached)
}
