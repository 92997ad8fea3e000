package app

import (
	"net/url"
	"strings"
)

// redactMongoURI drops credentials and query options so the connection target
// can be logged.
func redactMongoURI(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Host == "" {
		return "<unparseable mongo uri>"
	}

	parsed.User = nil
	parsed.RawQuery = ""
	return parsed.String()
}
