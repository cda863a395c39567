package fetch

import (
	"net/url"
	"strings"
)

// EscapeURL percent-encodes the path and query of raw, so catalogs that
// publish unescaped names (spaces, brackets, ampersands) can be fetched.
// A URL that already contains escape sequences is returned as is, to avoid
// encoding it twice. Fragments are dropped.
func EscapeURL(raw string) string {
	if decoded, err := url.PathUnescape(raw); err == nil && decoded != raw {
		return raw
	}

	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return raw
	}

	end := strings.IndexAny(rest, "/?#")
	if end < 0 {
		return raw
	}
	host, rest := rest[:end], rest[end:]

	rest, _, _ = strings.Cut(rest, "#")
	path, query, hasQuery := strings.Cut(rest, "?")

	out := scheme + "://" + host + quote(path)
	if hasQuery && query != "" {
		out += "?" + quote(query)
	}
	return out
}

// quote escapes every byte except unreserved characters and '/'.
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// Expand substitutes {ref} and {name} in a URL template.
func Expand(template, ref, name string) string {
	return strings.NewReplacer("{ref}", ref, "{name}", name).Replace(template)
}

// JoinURL appends name to base, adding the separating slash when missing.
func JoinURL(base, name string) string {
	if strings.HasSuffix(base, "/") {
		return base + name
	}
	return base + "/" + name
}
