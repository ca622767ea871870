package crawler

import (
	"net/url"
	"sort"
	"strings"
)

// trackingParams holds exact query keys that never influence page identity.
var trackingParams = map[string]struct{}{
	"session":    {},
	"sid":        {},
	"jsessionid": {},
}

// Canonicalize normalizes a raw URL into a stable, comparable key.
// Fragments are stripped, tracking query parameters are dropped, the
// remaining parameters are sorted, and a single trailing slash is removed
// unless the path is the root. Malformed input passes through best-effort.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Fragment = ""
	if u.Host != "" && u.Path == "" {
		u.Path = "/"
	}

	u.RawQuery = canonicalQuery(u.Query())

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

func canonicalQuery(q url.Values) string {
	type pair struct{ k, v string }
	kept := make([]pair, 0, len(q))
	for k, vs := range q {
		if dropQueryKey(k) {
			continue
		}
		for _, v := range vs {
			kept = append(kept, pair{k, v})
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].k != kept[j].k {
			return kept[i].k < kept[j].k
		}
		return kept[i].v < kept[j].v
	})

	var b strings.Builder
	for i, p := range kept {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.v))
	}
	return b.String()
}

func dropQueryKey(key string) bool {
	lk := strings.ToLower(key)
	if strings.HasPrefix(lk, "utm_") || strings.HasPrefix(lk, "qt-") {
		return true
	}
	_, tracked := trackingParams[lk]
	return tracked
}
