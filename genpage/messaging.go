package genpage

import (
	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/pageid"
)

// Messaging generates the "8…" internal-mail pages: a compose form whose
// form Action is "send_message".
type Messaging struct{}

// Generate implements resolver.Generator.
func (g Messaging) Generate(userID, id string) (*meta.PageMeta, []byte, error) {
	if !pageid.IsMessaging(id) {
		return nil, nil, nil
	}

	m := &meta.PageMeta{
		PublisherName:  "Mitteilungen",
		PublisherColor: 3,
		Links:          map[string]string{},
		Inputs: &meta.FormSpec{
			Fields: []meta.FieldSpec{
				{Name: "user_id", Line: 5, Column: 10, Width: 12, Height: 1, Hint: "An Teilnehmer:", Special: "user_id"},
				{Name: "ext", Line: 6, Column: 10, Width: 4, Height: 1, Hint: "Mitbenutzer:", Special: "ext"},
				{Name: "body", Line: 8, Column: 1, Width: 40, Height: 10, Hint: "Nachricht:"},
			},
			Action: "send_message",
		},
	}
	return m, []byte(cept.FromStr("Neue Mitteilung")), nil
}
