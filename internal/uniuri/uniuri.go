package uniuri

import (
	"crypto/rand"
)

// StdLen is the standard string length, about 95 bits of entropy with StdChars.
const StdLen = 16

// StdChars is the default alphabet.
var StdChars = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of StdLen characters from StdChars.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLenChars returns a random string of length characters taken from
// chars, which must hold between 2 and 256 bytes. Random bytes above the
// largest multiple of len(chars) are dropped so every character is equally
// likely.
func NewLenChars(length int, chars []byte) string {
	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: wrong charset length")
	}

	limit := 256 - (256 % clen)
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}
