package utils

import (
	"regexp"
	"strings"
)

var campaignCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{14}$`)

// IsValidCampaignCode reports whether code has the exact shape of a public
// campaign code. Malformed codes are rejected before any store lookup so
// callers cannot distinguish them from nonexistent ones.
func IsValidCampaignCode(code string) bool {
	return campaignCodePattern.MatchString(code)
}

// SanitizeURL prefixes https:// when the target URL carries no scheme.
func SanitizeURL(url string) string {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}
