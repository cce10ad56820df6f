// Package urlutil validates and normalizes caller-supplied URLs.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// RequireHTTP rejects URLs that are not absolute http:// or https:// URLs.
// The metadata resolver assumes this has been checked by its caller.
func RequireHTTP(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q must start with http:// or https://", rawURL)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q is missing a host", rawURL)
	}
	return nil
}

// Normalize standardizes a URL to avoid accidental duplicates.
// It lowercases the scheme and host, removes default ports and fragments,
// and sorts query parameters.
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""

	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}
