// Package field implements the single-field line editor: a rectangular
// screen region, a running string, and the CEPT input conventions
// (terminator, backspace, legal-value matching, DCT skip, INI escape)
// that the form driver composes into a multi-field form.
package field

import (
	runewidth "github.com/mattn/go-runewidth"

	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/legalvalues"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/terminal"
)

// Result is what an Editor hands back to the form driver.
type Result struct {
	// Value is the entered string. If IsCommand is true, Value is the
	// gateway command name typed after INI, not the field's own value.
	Value string
	// Skip reports that DCT was seen: the form driver should short-
	// circuit all remaining fields to their defaults.
	Skip bool
	// IsCommand reports that the field was escaped via INI.
	IsCommand bool
}

// Editor owns one field's region and running buffer.
type Editor struct {
	spec         meta.FieldSpec
	term         terminal.Terminal
	legal        *legalvalues.Set
	noNavigation bool
}

// New creates an Editor for spec, reading from and writing to term.
// noNavigation carries the owning form's no_navigation setting: when set,
// DCT and INI are consumed as ordinary data bytes instead of controls.
func New(spec meta.FieldSpec, term terminal.Terminal, noNavigation bool) *Editor {
	e := &Editor{spec: spec, term: term, noNavigation: noNavigation}
	if len(spec.LegalValues) > 0 {
		e.legal = legalvalues.New(spec.LegalValues)
	}
	return e
}

// DrawBackground paints the field's hint/box without reading any input,
// so the form driver can draw every field up front before editing any of
// them.
func (e *Editor) DrawBackground() error {
	if e.spec.CursorHome {
		if _, err := e.term.Write(cept.CursorHome()); err != nil {
			return err
		}
	}
	if _, err := e.term.Write(cept.SetCursor(e.spec.Line, e.spec.Column)); err != nil {
		return err
	}
	if e.spec.ClearsLine() {
		if _, err := e.term.Write(cept.ClearLine()); err != nil {
			return err
		}
	}
	if e.spec.Hint != "" {
		if _, err := e.term.Write(cept.FromStr(e.spec.Hint)); err != nil {
			return err
		}
		if _, err := e.term.Write(cept.SetCursor(e.spec.Line, e.spec.Column)); err != nil {
			return err
		}
	}
	return e.term.Flush()
}

// reposition moves the cursor back to the field's start, without
// repainting its hint or clearing its line, so a later Edit call on a
// field whose background was already drawn doesn't disturb fields drawn
// after it.
func (e *Editor) reposition() error {
	if e.spec.CursorHome {
		if _, err := e.term.Write(cept.CursorHome()); err != nil {
			return err
		}
	}
	if _, err := e.term.Write(cept.SetCursor(e.spec.Line, e.spec.Column)); err != nil {
		return err
	}
	return e.term.Flush()
}

// maxCells is the number of terminal cells the field's box can hold.
func (e *Editor) maxCells() int {
	w, h := e.spec.Width, e.spec.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w * h
}

// Edit runs the interactive edit loop. inheritedSkip is the skip flag
// accumulated from earlier fields in the form; once true, this field
// short-circuits to its default value without reading any input.
func (e *Editor) Edit(inheritedSkip bool) (Result, error) {
	if inheritedSkip {
		return Result{Value: e.spec.Default, Skip: true}, nil
	}

	if err := e.reposition(); err != nil {
		return Result{}, err
	}

	buf := []rune(e.spec.Default)
	if e.spec.Default != "" {
		if _, err := e.term.Write(cept.FromStr(e.spec.Default)); err != nil {
			return Result{}, err
		}
		if err := e.term.Flush(); err != nil {
			return Result{}, err
		}
	}

	// inCommand is set once INI is seen: the rest of the keystrokes up to
	// TER are captured as the gateway command name rather than the
	// field's own value.
	var inCommand bool
	var cmd []rune

	for {
		b, err := e.term.ReadByte()
		if err != nil {
			return Result{}, err
		}

		switch {
		case !e.noNavigation && !inCommand && b == cept.DCT:
			return Result{Value: string(buf), Skip: true}, nil

		case !e.noNavigation && !inCommand && b == cept.INI:
			inCommand = true

		case e.noNavigation && (b == cept.DCT || b == cept.INI):
			// With no_navigation, DCT and INI are kept as field data.
			buf = append(buf, rune(b))

		case b == cept.TER:
			if e.spec.EchoTer {
				if _, err := e.term.Write([]byte{cept.TER}); err != nil {
					return Result{}, err
				}
				_ = e.term.Flush()
			}
			if inCommand {
				return Result{Value: string(cmd), IsCommand: true}, nil
			}
			return Result{Value: string(buf)}, nil

		case b == cept.BS && inCommand:
			if len(cmd) > 0 {
				cmd = cmd[:len(cmd)-1]
				if _, err := e.term.Write([]byte{cept.BS, ' ', cept.BS}); err != nil {
					return Result{}, err
				}
				_ = e.term.Flush()
			}

		case b == cept.BS:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				if _, err := e.term.Write([]byte{cept.BS, ' ', cept.BS}); err != nil {
					return Result{}, err
				}
				_ = e.term.Flush()
			}

		case inCommand && isPrintable(b):
			cmd = append(cmd, rune(b))
			if _, err := e.term.Write(cept.FromStr(string(rune(b)))); err != nil {
				return Result{}, err
			}
			_ = e.term.Flush()

		case isPrintable(b):
			candidate := append(append([]rune{}, buf...), rune(b))
			if e.legal != nil && e.spec.EndOnIllegalCharacter {
				if !e.legal.IsPrefix(string(candidate)) {
					// Illegal character: the field ends now, without
					// consuming it, on the buffer built so far.
					return Result{Value: string(buf)}, nil
				}
			}

			if runewidth.StringWidth(string(candidate)) > e.maxCells() {
				continue
			}

			buf = candidate
			if _, err := e.term.Write(cept.FromStr(string(rune(b)))); err != nil {
				return Result{}, err
			}
			_ = e.term.Flush()

			if e.legal != nil && e.spec.EndOnLegalString && e.legal.IsMember(string(buf)) {
				return Result{Value: string(buf)}, nil
			}
		}
	}
}

func isPrintable(b byte) bool {
	return b >= 0x20 && b != 0x7f
}
