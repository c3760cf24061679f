package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForDialCommandMatchesPlainD(t *testing.T) {
	in := bytes.NewBufferString("garbage\r\nATD\r\n")
	out := &bytes.Buffer{}
	err := WaitForDialCommand(in, out)
	require.NoError(t, err)
}

func TestWaitForDialCommandMatchesExtendedForm(t *testing.T) {
	in := bytes.NewBufferString("AT X3 D\n")
	out := &bytes.Buffer{}
	err := WaitForDialCommand(in, out)
	require.NoError(t, err)
}

func TestWaitForDialCommandErrorsOnEOFWithoutMatch(t *testing.T) {
	in := bytes.NewBufferString("nope")
	out := &bytes.Buffer{}
	err := WaitForDialCommand(in, out)
	assert.Error(t, err)
}

func TestNewEchoesWrites(t *testing.T) {
	in := bytes.NewBufferString("x")
	out := &bytes.Buffer{}
	term := New(in, out)
	_, err := term.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, term.Flush())
	assert.Equal(t, "hi", out.String())
}
