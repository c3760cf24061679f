// Package cept builds CEPT presentation-layer byte sequences: cursor
// positioning, color and palette selection, screen clearing, line
// protection, and the handful of mode switches the page renderer needs.
// Every function here is pure — it returns a self-contained byte slice,
// and concatenating any number of them is always valid.
package cept

import "fmt"

// Control bytes. The simple-color and palette-select/parallel-mode values
// are taken directly from the "!BTX" easter egg kept (commented out) in
// the original source; the remaining controls are filled in self-
// consistently since no CEPT decoder is in scope.
const (
	byteUS   = 0x1f // unit separator: cursor-address prefix
	byteRS   = 0x1e // record separator: cursor home
	byteFF   = 0x0c // form feed: clear screen
	byteCR   = 0x0d
	byteSO   = 0x0e // shift out: G1 into left charset
	byteSI   = 0x0f // shift in: G0 into left charset
	byteESC  = 0x1b
	byteCSI8 = 0x9b // 8-bit introducer, used for palette select
	byteDH   = 0x8d // double height
	byte9D   = 0x9d
	byteDCT  = 0x18 // CAN: skip remaining form fields
	byteINI  = 0x11 // DC1: gateway-escape initiator
	byteTER  = 0x0d // CR: input terminator
	byteBS   = 0x08
	byteETX  = 0x03 // end of page
)

// DCT is the control byte that tells the field editor to skip the
// remaining fields in the current form.
const DCT = byteDCT

// INI is the control byte that escapes the current field to a gateway
// command, handled by the form driver / navigation loop.
const INI = byteINI

// TER is the input terminator byte.
const TER = byteTER

// BS is backspace.
const BS = byteBS

// HideCursor returns the sequence that hides the terminal cursor.
func HideCursor() []byte { return []byte{byteESC, 0x3f, 0x68} }

// SetRes40x24 selects the standard 40x24 CEPT screen resolution.
func SetRes40x24() []byte { return []byte{byteESC, 0x3f, 0x35} }

// SetCursor positions the cursor at the given 1-based row and column.
func SetCursor(row, col int) []byte {
	return []byte{byteUS, byte(0x40 + row), byte(0x40 + col)}
}

// CursorHome moves the cursor to the top-left of the screen.
func CursorHome() []byte { return []byte{byteRS} }

// ClearScreen clears the whole screen.
func ClearScreen() []byte { return []byte{byteFF} }

// ClearLine clears the current line from the cursor position.
func ClearLine() []byte { return []byte{byteESC, 0x58} }

// ProtectLine marks the current line as protected (not overwritten by a
// following clear/payload write).
func ProtectLine() []byte { return []byte{byteESC, 0x29} }

// UnprotectLine lifts line protection.
func UnprotectLine() []byte { return []byte{byteESC, 0x2a} }

// ParallelLimitedMode switches into parallel attribute mode.
func ParallelLimitedMode() []byte { return []byte{byteESC, 0x22, 0x41} }

// SerialLimitedMode switches into serial attribute mode.
func SerialLimitedMode() []byte { return []byte{byteESC, 0x22, 0x40} }

// SetFgColor sets the foreground color via a palette index (0..15).
func SetFgColor(n int) []byte {
	if n < 0 || n > 15 {
		panic(fmt.Sprintf("cept: palette foreground color out of range: %d", n))
	}
	return []byte{byteCSI8, byte(0x30 + n), 0x6d}
}

// SetFgColorSimple sets the foreground color using the simple 0..7 set.
func SetFgColorSimple(n int) []byte {
	if n < 0 || n > 7 {
		panic(fmt.Sprintf("cept: simple foreground color out of range: %d", n))
	}
	return []byte{byte(0x80 + n)}
}

// SetLineFgColorSimple sets the foreground color for the whole line using
// the simple 0..7 set.
func SetLineFgColorSimple(n int) []byte {
	if n < 0 || n > 7 {
		panic(fmt.Sprintf("cept: simple line foreground color out of range: %d", n))
	}
	return []byte{byteESC, 0x24, byte(0x80 + n)}
}

// SetPalette selects which of the defined palettes is active.
func SetPalette(n int) []byte {
	return []byte{byteCSI8, byte(0x30 + n), 0x40}
}

// SequenceEndOfPage marks the end of a transmitted page.
func SequenceEndOfPage() []byte { return []byte{byteETX} }

// Ini returns the initiator byte as a standalone sequence, used by dynamic
// generators that need to surface a gateway command outside of a field.
func Ini() []byte { return []byte{byteINI} }

// Code9D emits the 0x9D control used between header and page id in the
// status line.
func Code9D() []byte { return []byte{byte9D} }

// DoubleHeight switches the following text to double-height glyphs.
func DoubleHeight() []byte { return []byte{byteDH} }

// ShiftIn / ShiftOut select G0/G1 into the left character set, used by
// character-set load sequences.
func ShiftIn() []byte  { return []byte{byteSI} }
func ShiftOut() []byte { return []byte{byteSO} }

// LoadCharsetG0 loads a named character set into G0. set is a single
// identifying byte as assigned by the character-set table (DRCS loads use
// 0x20 as documented in the BTX "load DRCs into G0" sequence).
func LoadCharsetG0(set byte) []byte {
	return []byte{byteESC, 0x28, set, 0x40}
}
