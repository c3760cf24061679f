// Package genpage implements the dynamic page generators: small,
// code-defined pages (login, user management, messaging) that take
// precedence over the filesystem resolver for their reserved id
// prefixes, mirroring the original's Login_UI/User_UI/Messaging_UI
// modules.
package genpage

import (
	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/pageid"
)

var loginConfirmOff = false

// Login generates the login form (page ids starting with "00000", or the
// reserved id "9a" for re-login from elsewhere in the system).
type Login struct{}

// Generate implements resolver.Generator.
func (g Login) Generate(userID, id string) (*meta.PageMeta, []byte, error) {
	if !pageid.IsLogin(id) {
		return nil, nil, nil
	}

	m := &meta.PageMeta{
		PublisherName:  "!BTX",
		PublisherColor: 0,
		Links:          map[string]string{},
		Inputs: &meta.FormSpec{
			Fields: []meta.FieldSpec{
				{
					Name: "user_id", Line: 10, Column: 10, Width: 12, Height: 1,
					Hint: "Teilnehmernummer:", Special: "user_id",
				},
				{
					Name: "ext", Line: 11, Column: 10, Width: 4, Height: 1,
					Hint: "Mitbenutzer:", Special: "ext",
				},
				{
					Name: "password", Line: 12, Column: 10, Width: 8, Height: 1,
					Hint: "Passwort:", Special: "$login_password",
				},
			},
			Target:  "page:0",
			Confirm: &loginConfirmOff,
			No55:    true,
		},
	}
	payload := append([]byte{}, cept.LoadCharsetG0(0x40)...)
	payload = append(payload, cept.ShiftOut()...)
	payload = append(payload, cept.DoubleHeight()...)
	payload = append(payload, cept.FromStr("Bildschirmtext-Anmeldung")...)
	payload = append(payload, cept.ShiftIn()...)
	return m, payload, nil
}
