package meta

// FormSpec describes a page's multi-field input form.
type FormSpec struct {
	Fields       []FieldSpec `yaml:"fields" json:"fields"`
	NoNavigation bool        `yaml:"no_navigation,omitempty" json:"no_navigation,omitempty"`
	Confirm      *bool       `yaml:"confirm,omitempty" json:"confirm,omitempty"`
	No55         bool        `yaml:"no_55,omitempty" json:"no_55,omitempty"`
	Action       string      `yaml:"action,omitempty" json:"action,omitempty"`
	Target       string      `yaml:"target,omitempty" json:"target,omitempty"`
	// Price, in whole cents, shown by the confirm sub-dialog when positive.
	Price int `yaml:"price,omitempty" json:"price,omitempty"`
}

// ConfirmEnabled returns whether the confirm sub-dialog runs; the field
// defaults to true when absent.
func (f FormSpec) ConfirmEnabled() bool {
	if f.Confirm == nil {
		return true
	}
	return *f.Confirm
}

// FieldSpec describes one field of a form.
type FieldSpec struct {
	Name                  string   `yaml:"name" json:"name"`
	Line                  int      `yaml:"line" json:"line"`
	Column                int      `yaml:"column" json:"column"`
	Height                int      `yaml:"height" json:"height"`
	Width                 int      `yaml:"width" json:"width"`
	FgColor               *int     `yaml:"fgcolor,omitempty" json:"fgcolor,omitempty"`
	BgColor               *int     `yaml:"bgcolor,omitempty" json:"bgcolor,omitempty"`
	Hint                  string   `yaml:"hint,omitempty" json:"hint,omitempty"`
	Type                  string   `yaml:"type,omitempty" json:"type,omitempty"`
	CursorHome            bool     `yaml:"cursor_home,omitempty" json:"cursor_home,omitempty"`
	LegalValues           []string `yaml:"legal_values,omitempty" json:"legal_values,omitempty"`
	ClearLine             *bool    `yaml:"clear_line,omitempty" json:"clear_line,omitempty"`
	EndOnIllegalCharacter bool     `yaml:"end_on_illegal_character,omitempty" json:"end_on_illegal_character,omitempty"`
	EndOnLegalString      bool     `yaml:"end_on_legal_string,omitempty" json:"end_on_legal_string,omitempty"`
	EchoTer               bool     `yaml:"echo_ter,omitempty" json:"echo_ter,omitempty"`
	Default               string   `yaml:"default,omitempty" json:"default,omitempty"`
	Special               string   `yaml:"special,omitempty" json:"special,omitempty"`
	Validate              string   `yaml:"validate,omitempty" json:"validate,omitempty"`
}

// ClearsLine returns whether the field clears its line on entry; the
// field defaults to true when absent.
func (f FieldSpec) ClearsLine() bool {
	if f.ClearLine == nil {
		return true
	}
	return *f.ClearLine
}

// DefaultNavigationForm synthesizes the single-field navigation form used
// when a page supplies no "inputs" of its own: a 20-column field at the
// foot of the screen whose legal values are the page's link keystrokes
// (excluding the soft-return "#" link).
func DefaultNavigationForm(linkKeys []string) FormSpec {
	confirmOff := false
	return FormSpec{
		Fields: []FieldSpec{
			{
				Name:                  "$navigation",
				Line:                  24,
				Column:                1,
				Height:                1,
				Width:                 20,
				ClearLine:             boolPtr(false),
				LegalValues:           linkKeys,
				EndOnIllegalCharacter: true,
				EndOnLegalString:      true,
				EchoTer:               true,
			},
		},
		Confirm: &confirmOff,
		No55:    true,
	}
}

func boolPtr(b bool) *bool { return &b }
