// Package normalize canonicalizes URLs and text so that equality and
// similarity checks elsewhere in the pipeline behave deterministically.
package normalize

import (
	"net/url"
	"sort"
	"strings"
)

// Query parameter fragments that identify tracking noise. A parameter
// is dropped when its lowercased key contains any of these.
var trackingParams = []string{
	"utm_",
	"ref_",
	"source",
	"medium",
	"campaign",
	"mc_",
	"affiliate",
	"fbclid",
	"gclid",
	"msclkid",
}

// URL canonicalizes a link: lowercases scheme and host, strips the
// fragment and tracking query parameters, and rebuilds the remaining
// query with stable key ordering so equivalent links compare equal.
// On any parse failure it falls back to the trimmed, lowercased raw
// input. It never returns an error and is idempotent.
func URL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if isTrackingParam(key) {
				delete(q, key)
			}
		}
		u.RawQuery = encodeStable(q)
	}

	return u.String()
}

func isTrackingParam(key string) bool {
	key = strings.ToLower(key)
	for _, frag := range trackingParams {
		if strings.Contains(key, frag) {
			return true
		}
	}
	return false
}

// encodeStable is url.Values.Encode with explicit key sorting spelled
// out; value order within a key is preserved.
func encodeStable(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range q[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// Text lowercases, collapses whitespace runs to single spaces and
// trims. Empty input yields an empty string.
func Text(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}
