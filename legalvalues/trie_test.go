package legalvalues

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrefixAndMember(t *testing.T) {
	s := New([]string{"1", "12", "2", "99"})
	assert.True(t, s.IsPrefix("1"))
	assert.True(t, s.IsMember("1"))
	assert.True(t, s.IsPrefix("12"))
	assert.True(t, s.IsMember("12"))
	assert.False(t, s.IsPrefix("3"))
	assert.False(t, s.IsMember("9"))
	assert.True(t, s.IsPrefix("9"))
	assert.True(t, s.IsMember("99"))
}

func TestEmptySet(t *testing.T) {
	s := New(nil)
	assert.False(t, s.IsPrefix("1"))
	assert.False(t, s.IsMember(""))
}

func TestEmptyStringIsLegalValue(t *testing.T) {
	s := New([]string{""})
	assert.True(t, s.IsMember(""))
}
