package userstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryExistsAndLogin(t *testing.T) {
	m := NewMemory()
	m.AddUser("123456", "1", "geheim")

	assert.True(t, m.Exists("123456", ""))
	assert.True(t, m.Exists("123456", "1"))
	assert.False(t, m.Exists("123456", "2"))
	assert.False(t, m.Exists("000000", ""))

	user, err := m.Login("123456", "1", "geheim", false)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "123456", user.ID)

	user, err = m.Login("123456", "1", "wrong", false)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = m.Login("123456", "1", "wrong", true)
	require.NoError(t, err)
	assert.NotNil(t, user)
}
