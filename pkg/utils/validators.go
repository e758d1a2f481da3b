package utils

import (
	"net/url"
	"strings"
)

// NormalizeURL infers an https scheme for bare hostnames so users can paste
// "example.com/careers" into the batch form.
func NormalizeURL(raw string) string {
	if strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

// IsValidURL reports whether the input, after scheme inference, parses as a
// well-formed absolute URL.
func IsValidURL(raw string) bool {
	u, err := url.Parse(NormalizeURL(raw))
	return err == nil && u.Scheme != "" && u.Host != ""
}

// TransformURLs turns the batch form's newline-separated URL field into the
// normalized list sent to the scraping service. It fails fast with a
// validation error before any request goes out: blank lines are dropped, and
// every remaining line must be a valid URL.
func TransformURLs(input string) ([]string, error) {
	var urls []string
	for _, line := range strings.Split(input, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}

	if len(urls) == 0 {
		return nil, NewValidationError("at least one valid URL is required")
	}

	for _, u := range urls {
		if !IsValidURL(u) {
			return nil, NewValidationError("invalid URL: " + u)
		}
	}

	for i, u := range urls {
		urls[i] = NormalizeURL(u)
	}
	return urls, nil
}
