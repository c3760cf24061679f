package pageid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "0a", Normalize("0"))
	assert.Equal(t, "0a", Normalize("0a"))
	assert.Equal(t, "", Normalize(""))
}

func TestSuccessorFromDigit(t *testing.T) {
	got, err := Successor("0")
	assert.NoError(t, err)
	assert.Equal(t, "0a", got)
}

func TestSuccessorFromLetter(t *testing.T) {
	got, err := Successor("0a")
	assert.NoError(t, err)
	assert.Equal(t, "0b", got)

	got, err = Successor("0y")
	assert.NoError(t, err)
	assert.Equal(t, "0z", got)
}

func TestSuccessorFromZIsError(t *testing.T) {
	_, err := Successor("0z")
	assert.ErrorIs(t, err, ErrNoSuccessor)
}

func TestReservedPrefixes(t *testing.T) {
	assert.True(t, IsLogin("00000"))
	assert.True(t, IsLogin("00000a"))
	assert.True(t, IsLogin("9a"))
	assert.False(t, IsLogin("9ab"))
	assert.True(t, IsUserManagement("7a"))
	assert.True(t, IsMessaging("8a"))
	assert.False(t, IsUserManagement("8a"))
}
