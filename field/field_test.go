package field

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/terminal"
)

func newTestTerminal(input []byte) (terminal.Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return terminal.New(bytes.NewReader(input), out), out
}

func TestEditSimpleValueTerminated(t *testing.T) {
	input := []byte("AB1")
	input = append(input, cept.TER)
	term, _ := newTestTerminal(input)

	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 10, Height: 1}, term, false)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.Equal(t, "AB1", res.Value)
	assert.False(t, res.Skip)
	assert.False(t, res.IsCommand)
}

func TestEditBackspace(t *testing.T) {
	input := []byte{'A', 'B', cept.BS, 'C', cept.TER}
	term, _ := newTestTerminal(input)

	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 10, Height: 1}, term, false)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.Equal(t, "AC", res.Value)
}

func TestEditInheritedSkipShortCircuits(t *testing.T) {
	term, _ := newTestTerminal(nil)
	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 10, Height: 1, Default: "X"}, term, false)
	res, err := e.Edit(true)
	require.NoError(t, err)
	assert.Equal(t, "X", res.Value)
	assert.True(t, res.Skip)
}

func TestEditDCTSetsSkip(t *testing.T) {
	input := []byte{'A', cept.DCT}
	term, _ := newTestTerminal(input)
	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 10, Height: 1}, term, false)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.Equal(t, "A", res.Value)
	assert.True(t, res.Skip)
}

func TestEditINIEscapesAsCommand(t *testing.T) {
	input := append([]byte{cept.INI}, []byte("0")...)
	input = append(input, cept.TER)
	term, _ := newTestTerminal(input)
	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 10, Height: 1}, term, false)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.True(t, res.IsCommand)
	assert.Equal(t, "0", res.Value)
}

func TestEditNoNavigationTreatsControlBytesAsData(t *testing.T) {
	input := []byte{cept.DCT, cept.TER}
	term, _ := newTestTerminal(input)
	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 10, Height: 1}, term, true)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.Equal(t, string(rune(cept.DCT)), res.Value)
	assert.False(t, res.Skip)
}

func TestEditEndOnIllegalCharacterStopsBeforeBadByte(t *testing.T) {
	input := []byte{'1', '2', 'x'}
	term, _ := newTestTerminal(input)
	e := New(meta.FieldSpec{
		Name: "f", Line: 1, Column: 1, Width: 10, Height: 1,
		LegalValues:           []string{"12", "13"},
		EndOnIllegalCharacter: true,
	}, term, false)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.Equal(t, "12", res.Value)
}

func TestEditEndOnLegalStringStopsOnMatch(t *testing.T) {
	input := []byte{'1', '2', '9', '9'}
	term, _ := newTestTerminal(input)
	e := New(meta.FieldSpec{
		Name: "f", Line: 1, Column: 1, Width: 10, Height: 1,
		LegalValues:      []string{"12", "99"},
		EndOnLegalString: true,
	}, term, false)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.Equal(t, "12", res.Value)
}

func TestEditEchoTerWritesTerminator(t *testing.T) {
	input := []byte{'A', cept.TER}
	term, out := newTestTerminal(input)
	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 10, Height: 1, EchoTer: true}, term, false)
	_, err := e.Edit(false)
	require.NoError(t, err)
	assert.Contains(t, out.Bytes(), byte(cept.TER))
}

func TestEditRespectsWidthBound(t *testing.T) {
	input := []byte{'1', '2', '3', cept.TER}
	term, _ := newTestTerminal(input)
	e := New(meta.FieldSpec{Name: "f", Line: 1, Column: 1, Width: 2, Height: 1}, term, false)
	res, err := e.Edit(false)
	require.NoError(t, err)
	assert.Equal(t, "12", res.Value)
}
