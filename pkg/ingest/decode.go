package ingest

import (
	"strings"
	"unicode/utf8"
)

// DecodeText turns raw uploaded bytes into the text stored locally. Valid
// UTF-8 passes through; anything else degrades to a best-effort decode where
// every invalid byte becomes the replacement rune. Never fails: content
// availability must not depend on well-formed input.
func DecodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return fallbackDecode(raw)
}

func fallbackDecode(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteRune('�')
			i++
			continue
		}
		b.Write(raw[i : i+size])
		i += size
	}
	return b.String()
}
