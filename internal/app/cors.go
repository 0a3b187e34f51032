package app

import (
	"net/url"
	"strings"
)

// allowOrigin builds the CORS origin check for the configured patterns. A
// pattern is "*", a full origin such as "https://app.example.com", a bare
// host, "*.example.com" for any subdomain, or "localhost:*" for any port.
// No patterns allows every origin.
func allowOrigin(patterns []string) func(string) bool {
	if len(patterns) == 0 {
		return func(string) bool { return true }
	}
	return func(origin string) bool {
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		host := strings.ToLower(u.Host)
		hostname := strings.ToLower(u.Hostname())
		for _, pattern := range patterns {
			pattern = strings.ToLower(strings.TrimSpace(pattern))
			switch {
			case pattern == "*":
				return true
			case strings.Contains(pattern, "://"):
				if strings.TrimSuffix(pattern, "/") == strings.ToLower(u.Scheme)+"://"+host {
					return true
				}
			case strings.HasPrefix(pattern, "*."):
				if strings.HasSuffix(hostname, pattern[1:]) {
					return true
				}
			case strings.HasSuffix(pattern, ":*"):
				if hostname == strings.TrimSuffix(pattern, ":*") {
					return true
				}
			case pattern == host:
				return true
			}
		}
		return false
	}
}
