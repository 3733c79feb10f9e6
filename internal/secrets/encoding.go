package secrets

import (
	"encoding/base64"
	"strings"
	"unicode"
)

// Separator joins the tags and nonces attributes of a fragment.
const Separator = ";"

// EncodeBase64 encodes data with standard, padded base64.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes standard base64 the way a browser's atob does:
// whitespace is ignored and trailing padding is optional.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// SplitList splits a tags or nonces attribute. An empty attribute has no
// entries.
func SplitList(attr string) []string {
	if attr == "" {
		return nil
	}
	return strings.Split(attr, Separator)
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, Separator)
}

// PeelOrder returns a reversed copy of a declared tag or nonce list.
func PeelOrder(declared []string) []string {
	if len(declared) == 0 {
		return nil
	}
	out := make([]string, len(declared))
	for i, v := range declared {
		out[len(declared)-1-i] = v
	}
	return out
}
