package genpage

import (
	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/pageid"
)

// UserManagement generates the "7…" account-settings pages: currently
// just a landing page listing the available sub-functions by link.
type UserManagement struct{}

// Generate implements resolver.Generator.
func (g UserManagement) Generate(userID, id string) (*meta.PageMeta, []byte, error) {
	if !pageid.IsUserManagement(id) {
		return nil, nil, nil
	}

	m := &meta.PageMeta{
		PublisherName:  "Teilnehmerverwaltung",
		PublisherColor: 2,
		Links: map[string]string{
			"1": "71",
			"9": "0",
		},
	}
	return m, []byte(cept.FromStr("Teilnehmerverwaltung\n1 Passwort ändern\n9 Zurück")), nil
}
