package cept

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressShortRunsUntouched(t *testing.T) {
	in := []byte("AABCC")
	assert.Equal(t, in, Compress(in))
}

func TestCompressLongRunOfSpaces(t *testing.T) {
	in := make([]byte, 10)
	for i := range in {
		in[i] = ' '
	}
	got := Compress(in)
	assert.Equal(t, []byte{' ', byteREP, 0x40 + 9}, got)
}

func TestCompressRunLongerThanMax(t *testing.T) {
	in := make([]byte, maxRunLength+5)
	for i := range in {
		in[i] = 'x'
	}
	got := Compress(in)
	assert.True(t, len(got) > 3, "expected the run to be split across multiple REP codes")
	assert.Equal(t, byte('x'), got[0])
	assert.Equal(t, byte(byteREP), got[1])
}

func TestCompressMixedContent(t *testing.T) {
	in := []byte("A   B")
	got := Compress(in)
	assert.Equal(t, []byte{'A', ' ', byteREP, 0x40 + 2, 'B'}, got)
}
