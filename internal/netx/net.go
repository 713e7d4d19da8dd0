// Package netx holds URL helpers.
package netx

import (
	"fmt"
	"net/url"
	"strings"
)

// JoinURL appends escaped path segments to base. When trailingSlash is set
// the result ends with "/".
//
//	JoinURL("https://example.com/api", true, "accounts", "confirm-email", key)
//	// https://example.com/api/accounts/confirm-email/<key>/
func JoinURL(base string, trailingSlash bool, segments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}

	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}

	p := strings.TrimRight(u.Path, "/")
	if len(escaped) > 0 {
		p += "/" + strings.Join(escaped, "/")
	}
	if trailingSlash {
		p += "/"
	}
	u.Path = ""
	u.RawPath = ""

	return strings.TrimRight(u.String(), "/") + p, nil
}
