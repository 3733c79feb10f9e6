package secrets

import (
	"strings"
	"testing"
)

func TestDeriveKeyEmptyPasswordIsZero(t *testing.T) {
	var zero Key
	if got := DeriveKey(""); got != zero {
		t.Fatalf("Expected all-zero key, got %x", got)
	}
}

func TestDeriveKeyCopiesCharactersAndPads(t *testing.T) {
	key := DeriveKey("abc")

	want := []byte{'a', 'b', 'c'}
	for i, b := range want {
		if key[i] != b {
			t.Errorf("Expected byte %d to be %q, got %q", i, b, key[i])
		}
	}
	for i := len(want); i < KeySize; i++ {
		if key[i] != 0 {
			t.Errorf("Expected zero padding at byte %d, got %#x", i, key[i])
		}
	}
}

func TestDeriveKeyTruncatesLongPasswords(t *testing.T) {
	base := strings.Repeat("x", KeySize)

	tests := []struct {
		name     string
		password string
	}{
		{"exact", base},
		{"one extra", base + "y"},
		{"many extra", base + strings.Repeat("z", 100)},
		{"extra multibyte", base + "ü€"},
	}

	want := DeriveKey(base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveKey(tt.password); got != want {
				t.Errorf("Expected key to depend only on the first %d characters, got %x", KeySize, got)
			}
		})
	}
}

func TestDeriveKeyIsDeterministic(t *testing.T) {
	for _, password := range []string{"", "hunter2", "päßwörd", "🔑key"} {
		first := DeriveKey(password)
		for i := 0; i < 5; i++ {
			if got := DeriveKey(password); got != first {
				t.Fatalf("DeriveKey(%q) changed between calls: %x vs %x", password, first, got)
			}
		}
	}
}

func TestDeriveKeyUsesCodePointsNotUTF8(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []byte
	}{
		// U+00FC is 0xC3 0xBC in UTF-8 but a single position here.
		{"latin1", "ü", []byte{0xFC}},
		// U+20AC truncates to its low byte.
		{"bmp truncated", "€a", []byte{0xAC, 'a'}},
		// U+1F511 is a surrogate pair: the full code point, then the low
		// surrogate 0xDD11.
		{"astral", "🔑a", []byte{0x11, 0x11, 'a'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := DeriveKey(tt.password)
			for i, b := range tt.want {
				if key[i] != b {
					t.Errorf("Expected byte %d to be %#x, got %#x", i, b, key[i])
				}
			}
			if key[len(tt.want)] != 0 {
				t.Errorf("Expected zero padding after %d bytes, got %#x", len(tt.want), key[len(tt.want)])
			}
		})
	}
}
