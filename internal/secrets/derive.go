package secrets

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Key is a layer key derived from a tag password.
type Key [KeySize]byte

// DeriveKey turns a password into a layer key.
//
// The password is indexed the way the browser viewer indexes a JavaScript
// string: by UTF-16 code unit. Position i of the key holds the low byte of the
// code point starting at unit i; positions past the end of the password stay
// zero and units past KeySize are ignored. Latin-1 passwords therefore map one
// character to one byte, while anything wider collides. Changing this breaks
// every page already encrypted, so it stays as is.
func DeriveKey(password string) Key {
	var key Key

	units := utf16.Encode([]rune(password))
	for i := 0; i < KeySize && i < len(units); i++ {
		key[i] = byte(codePointAt(units, i))
	}

	return key
}

// codePointAt mirrors String.prototype.codePointAt: a high surrogate followed
// by a low surrogate yields the combined code point, any other unit yields
// itself.
func codePointAt(units []uint16, i int) rune {
	u := rune(units[i])
	if utf16.IsSurrogate(u) && i+1 < len(units) {
		if r := utf16.DecodeRune(u, rune(units[i+1])); r != utf8.RuneError {
			return r
		}
	}
	return u
}
