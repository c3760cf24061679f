// Package sysmsg builds the numbered system messages the navigation loop
// and form driver display at row 24: confirmation prompts, transaction
// status, and the error taxonomy's page-not-found / no-history codes.
package sysmsg

import (
	"fmt"

	"github.com/dostermann/bildschirmtext/cept"
)

// Known message codes.
const (
	NoHistory        = 10
	ConfirmFree      = 44
	ConfirmWithPrice = 47
	Accepted         = 55
	Sent             = 73
	PageNotFound     = 100
	SubpageNotFound  = 101
	PleaseWait       = 291
)

var plainText = map[int]string{
	NoHistory:       "Kein Rücksprung möglich -> #",
	ConfirmFree:     "Seite abschicken? (1=ja,2=nein) -> #",
	Accepted:        "Eingabe angenommen -> #",
	Sent:            "Nachricht gesendet -> #",
	PageNotFound:    "Seite nicht gefunden -> #",
	SubpageNotFound: "Unterseite nicht vorhanden -> #",
	PleaseWait:      "Bitte warten... -> #",
}

// Build returns the CEPT byte sequence for a numbered system message. args
// carries the message's single numeric parameter when the message takes
// one (currently only ConfirmWithPrice, a price in cents).
func Build(code int, args ...int) []byte {
	if code == ConfirmWithPrice {
		price := 0
		if len(args) > 0 {
			price = args[0]
		}
		return Custom(fmt.Sprintf("Seite abschicken für %s? (1=ja,2=nein) -> #", formatCurrency(price)))
	}
	if text, ok := plainText[code]; ok {
		return Custom(text)
	}
	return Custom(fmt.Sprintf("Fehler %d -> #", code))
}

// Custom builds a message from literal text, used for validation messages
// that aren't part of the fixed numeric table (e.g. "invalid subscriber").
func Custom(text string) []byte {
	out := make([]byte, 0, len(text)+8)
	out = append(out, cept.SetCursor(24, 1)...)
	out = append(out, cept.ClearLine()...)
	out = append(out, cept.FromStr(text)...)
	return out
}

// formatCurrency renders whole German-cent amounts as a "D,DD DM" string.
func formatCurrency(cents int) string {
	return fmt.Sprintf("%d,%02d DM", cents/100, cents%100)
}
