// Package form drives a page's input form: it creates one field.Editor
// per field, draws every field's background up front, then iterates
// fields collecting and validating input, running the confirm sub-dialog,
// and dispatching the collected values to the form's target.
package form

import (
	"fmt"
	"strings"

	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/field"
	"github.com/dostermann/bildschirmtext/messaging"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/sysmsg"
	"github.com/dostermann/bildschirmtext/terminal"
	"github.com/dostermann/bildschirmtext/validate"
)

// Outcome is what a completed form hands back to the navigation loop.
type Outcome struct {
	// Command is set when a field escaped via INI, or the form's target
	// resolved to a page id or registry command: the navigation loop
	// should treat it as the next desired_pageid.
	Command string
	IsCommand bool
	// Values are the collected field values, keyed by field name, when
	// the form has no "target" (the original's input_data passthrough).
	Values map[string]string
}

// Driver runs one form to completion.
type Driver struct {
	Term       terminal.Terminal
	Validators *validate.Registry
	Targets    *validate.TargetRegistry
	Builtins   validate.Builtins
	Messaging  messaging.Sink
	// SenderUserID is the currently logged-in user, used as the "from"
	// side of a send_message action.
	SenderUserID string
}

// Run executes spec's fields to completion and returns the resulting
// Outcome.
func (d *Driver) Run(spec meta.FormSpec) (Outcome, error) {
	editors := make([]*field.Editor, len(spec.Fields))
	for i, fs := range spec.Fields {
		e := field.New(fs, d.Term, spec.NoNavigation)
		editors[i] = e
		if err := e.DrawBackground(); err != nil {
			return Outcome{}, err
		}
	}

	values := map[string]string{}
	skip := false
	i := 0
	for i < len(spec.Fields) {
		fs := spec.Fields[i]
		res, err := editors[i].Edit(skip)
		if err != nil {
			return Outcome{}, err
		}
		if res.Skip {
			skip = true
		}
		if res.IsCommand {
			return Outcome{Command: res.Value, IsCommand: true}, nil
		}

		values[fs.Name] = res.Value

		result := d.validateField(fs, values)
		switch result.Outcome {
		case validate.OK:
			i++
		case validate.Bad:
			if err := d.showMessageAndWait(result.Message); err != nil {
				return Outcome{}, err
			}
			skip = false
		case validate.Restart:
			if err := d.showMessageAndWait(result.Message); err != nil {
				return Outcome{}, err
			}
			i = 0
			skip = false
			values = map[string]string{}
		}
	}

	if spec.ConfirmEnabled() {
		confirmed, err := d.runConfirm(spec.Price)
		if err != nil {
			return Outcome{}, err
		}
		if !confirmed {
			return Outcome{Values: values}, nil
		}
		if spec.Action == "send_message" {
			if err := d.Messaging.Send(d.SenderUserID, values["user_id"], values["ext"], values["body"]); err != nil {
				return Outcome{}, err
			}
			if err := d.showSentMessage(); err != nil {
				return Outcome{}, err
			}
		}
	} else if !spec.No55 {
		if _, err := d.Term.Write(sysmsg.Build(sysmsg.Accepted)); err != nil {
			return Outcome{}, err
		}
		if err := d.Term.Flush(); err != nil {
			return Outcome{}, err
		}
	}

	if spec.Target == "" {
		return Outcome{Values: values}, nil
	}

	if strings.HasPrefix(spec.Target, "page:") {
		return Outcome{Command: strings.TrimPrefix(spec.Target, "page:"), IsCommand: true}, nil
	}
	if strings.HasPrefix(spec.Target, "call:") {
		cmd, err := d.Targets.Resolve(spec.Target, values)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Command: cmd, IsCommand: true}, nil
	}
	return Outcome{}, fmt.Errorf("form: malformed target %q", spec.Target)
}

func (d *Driver) validateField(fs meta.FieldSpec, values map[string]string) validate.Result {
	if validate.IsCallTag(fs.Validate) {
		fn, ok := d.Validators.Lookup(fs.Validate)
		if !ok {
			return validate.Result{Outcome: validate.Bad, Message: fmt.Sprintf("unregistered validator %q -> #", fs.Validate)}
		}
		return fn(values)
	}
	return d.Builtins.Validate(fs.Special, values)
}

func (d *Driver) showMessageAndWait(message string) error {
	if _, err := d.Term.Write(sysmsg.Custom(message)); err != nil {
		return err
	}
	if err := d.Term.Flush(); err != nil {
		return err
	}
	return d.waitForTer()
}

func (d *Driver) showSentMessage() error {
	if _, err := d.Term.Write(sysmsg.Build(sysmsg.Sent)); err != nil {
		return err
	}
	if err := d.Term.Flush(); err != nil {
		return err
	}
	return d.waitForTer()
}

func (d *Driver) waitForTer() error {
	for {
		b, err := d.Term.ReadByte()
		if err != nil {
			return err
		}
		if b == cept.TER {
			return nil
		}
	}
}

// runConfirm displays the "send?" prompt (with a price when positive) and
// reads the 1/9 / 2 / backspace recognizer: "1" (echoed) then "9" commits,
// "2" cancels, backspace after "1" retracts and erases it. The original leaves dead code
// after each return (an echo that can never run); this implementation
// only performs the decision, per that resolution.
func (d *Driver) runConfirm(price int) (bool, error) {
	var msg []byte
	if price > 0 {
		msg = sysmsg.Build(sysmsg.ConfirmWithPrice, price)
	} else {
		msg = sysmsg.Build(sysmsg.ConfirmFree)
	}
	msg = append(msg, cept.SetCursor(24, 1)...)
	msg = append(msg, cept.SequenceEndOfPage()...)
	if _, err := d.Term.Write(msg); err != nil {
		return false, err
	}
	if err := d.Term.Flush(); err != nil {
		return false, err
	}

	seenOne := false
	for {
		b, err := d.Term.ReadByte()
		if err != nil {
			return false, err
		}
		switch {
		case b == '2':
			return false, nil
		case b == '1' && !seenOne:
			seenOne = true
			if _, err := d.Term.Write([]byte{'1'}); err != nil {
				return false, err
			}
			if err := d.Term.Flush(); err != nil {
				return false, err
			}
		case b == '9' && seenOne:
			return true, nil
		case b == cept.BS && seenOne:
			seenOne = false
			if _, err := d.Term.Write([]byte{cept.BS, ' ', cept.BS}); err != nil {
				return false, err
			}
			if err := d.Term.Flush(); err != nil {
				return false, err
			}
		}
	}
}
