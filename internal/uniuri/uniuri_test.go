package uniuri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a, b := New(), New()

	assert.Len(t, a, StdLen)
	assert.NotEqual(t, a, b)

	for _, c := range []byte(a) {
		assert.True(t, bytes.IndexByte(StdChars, c) >= 0, "unexpected character %q", c)
	}
}

func TestNewLenChars(t *testing.T) {
	testCases := []struct {
		name   string
		length int
		chars  []byte
	}{
		{name: "empty", length: 0, chars: StdChars},
		{name: "binary", length: 100, chars: []byte("01")},
		{name: "long", length: 5000, chars: StdChars},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewLenChars(tc.length, tc.chars)
			assert.Len(t, got, tc.length)

			for _, c := range []byte(got) {
				assert.True(t, bytes.IndexByte(tc.chars, c) >= 0)
			}
		})
	}

	assert.Panics(t, func() { NewLenChars(4, []byte("a")) })
}
