package nav

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/messaging"
	"github.com/dostermann/bildschirmtext/resolver"
	"github.com/dostermann/bildschirmtext/session"
	"github.com/dostermann/bildschirmtext/terminal"
	"github.com/dostermann/bildschirmtext/userstore"
	"github.com/dostermann/bildschirmtext/validate"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunBlankSubmitAdvancesSubpage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "0", "a.meta"), `publisher_name: "X"
publisher_color: 1
links: {}
`)
	writeFile(t, filepath.Join(root, "0", "a.cept"), "pageA")
	writeFile(t, filepath.Join(root, "0", "b.meta"), `publisher_name: "X"
publisher_color: 1
links: {}
`)
	writeFile(t, filepath.Join(root, "0", "b.cept"), "pageB")

	r, err := resolver.New(root)
	require.NoError(t, err)

	input := bytes.NewBuffer(nil)
	input.WriteByte(cept.TER) // blank $navigation submit on page "0a"
	out := &bytes.Buffer{}
	term := terminal.New(input, out)

	loop := &Loop{
		Term:       term,
		Resolver:   r,
		Session:    session.New(),
		Store:      userstore.NewMemory(),
		Messaging:  messaging.NewMemory(),
		Validators: validate.NewRegistry(),
		Targets:    validate.NewTargetRegistry(),
	}
	err = loop.Run("0")
	assert.Error(t, err) // terminal read exhausted after the single TER

	assert.Contains(t, out.String(), "pageA")
	assert.Equal(t, []string{"0", "0a"}, loop.Session.History)
}
