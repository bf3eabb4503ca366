package protocol

import "strings"

// Headers is the ordered-insensitive key/value mapping parsed from one
// discovery reply. Keys are lower-cased and trimmed; values are trimmed.
type Headers map[string]string

// Get retrieves a header value by name (case-insensitive), or returns an
// empty string if not present
func (h Headers) Get(key string) string {
	if h == nil {
		return ""
	}
	return h[strings.ToLower(key)]
}

// Has reports whether a header with the given name is present
func (h Headers) Has(key string) bool {
	if h == nil {
		return false
	}
	_, ok := h[strings.ToLower(key)]
	return ok
}

// ParseHeaders parses an HTTP-style header block into a Headers map.
//
// The input uses CRLF or LF line separators. Each line containing a ':'
// is split on the first occurrence only; the key is lower-cased and
// trimmed, the value trimmed, and inserted into the result. A duplicate
// key overwrites the earlier value. Lines without a ':' (including the
// status line "HTTP/1.1 200 OK") are skipped. Empty input yields an
// empty map.
//
// This function is total: malformed lines are never an error.
func ParseHeaders(raw string) Headers {
	headers := make(Headers)

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")

		idx := strings.Index(line, ":")
		if idx < 0 {
			// Not a header line (status line, blank line, noise)
			continue
		}

		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		headers[key] = value
	}

	return headers
}
