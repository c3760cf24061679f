package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "00000", opts.Page)
	assert.False(t, opts.Modem)
	assert.False(t, opts.Compress)
}

func TestParseFlags(t *testing.T) {
	opts, err := Parse([]string{"--modem", "--user=123456", "--page=0a", "--compress"})
	require.NoError(t, err)
	assert.True(t, opts.Modem)
	assert.Equal(t, "123456", opts.User)
	assert.Equal(t, "0a", opts.Page)
	assert.True(t, opts.Compress)
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--bogus"})
	assert.Error(t, err)
}
