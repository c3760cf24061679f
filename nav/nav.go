// Package nav implements the top-level per-connection navigation loop:
// resolving a desired page id, rendering it, running its form, and
// computing the next desired page id from history, links, or the
// successor rule for blank submits.
package nav

import (
	"github.com/dostermann/bildschirmtext/cept"
	"github.com/dostermann/bildschirmtext/form"
	"github.com/dostermann/bildschirmtext/messaging"
	"github.com/dostermann/bildschirmtext/meta"
	"github.com/dostermann/bildschirmtext/pageid"
	"github.com/dostermann/bildschirmtext/resolver"
	"github.com/dostermann/bildschirmtext/session"
	"github.com/dostermann/bildschirmtext/sysmsg"
	"github.com/dostermann/bildschirmtext/terminal"
	"github.com/dostermann/bildschirmtext/userstore"
	"github.com/dostermann/bildschirmtext/validate"
)

// Loop runs one connection's navigation from an initial desired page id
// until the byte stream closes or errors.
type Loop struct {
	Term       terminal.Terminal
	Resolver   *resolver.Resolver
	Session    *session.Session
	Store      userstore.UserStore
	Messaging  messaging.Sink
	Validators *validate.Registry
	Targets    *validate.TargetRegistry
	Compress   bool
}

// Run drives the loop starting at desiredPageID, returning when the byte
// stream is exhausted (io.EOF from a read) or on a fatal I/O error.
func (l *Loop) Run(desiredPageID string) error {
	var (
		lastPageData []byte
		currentForm  *meta.FormSpec
		links        map[string]string
		errorCode    int
	)

	for {
		if l.Session.UserID != "" {
			if err := l.Store.UpdateStats(l.Session.UserID); err != nil {
				return err
			}
		}

		addToHistory := true

		if errorCode == 0 {
			switch {
			case desiredPageID == pageid.Back:
				if len(l.Session.History) < 2 {
					errorCode = sysmsg.NoHistory
				} else {
					desiredPageID = l.Session.History[len(l.Session.History)-2]
					l.Session.History = l.Session.History[:len(l.Session.History)-2]
				}

			case desiredPageID == pageid.Reload:
				desiredPageID = l.Session.History[len(l.Session.History)-1]
				addToHistory = false
			}
		}

		// Back and Reload have replaced desiredPageID with a history entry
		// above; that entry is resolved here like any other id.
		if errorCode == 0 {
			switch {
			case desiredPageID == pageid.Resend:
				addToHistory = false

			default:
				page, ok, err := l.Resolver.Resolve(l.Session.UserID, desiredPageID)
				if err != nil {
					return err
				}
				if ok {
					rendered, err := l.Session.RenderPage(desiredPageID, page)
					if err != nil {
						return err
					}
					lastPageData = rendered
					links = page.Meta.Links
					currentForm = page.Meta.Inputs
					errorCode = 0
				} else {
					errorCode = sysmsg.PageNotFound
				}
			}
		}

		if errorCode == 0 {
			out := lastPageData
			if l.Compress {
				out = cept.Compress(out)
			}
			if _, err := l.Term.Write(out); err != nil {
				return err
			}
			if err := l.Term.Flush(); err != nil {
				return err
			}
			l.Session.CurrentPageID = desiredPageID
			if addToHistory {
				l.Session.History = append(l.Session.History, desiredPageID)
			}
		} else {
			code := errorCode
			if desiredPageID != "" {
				last := desiredPageID[len(desiredPageID)-1]
				if last >= 'b' && last <= 'z' {
					code = sysmsg.SubpageNotFound
				}
			}
			msg := append(sysmsg.Build(code), cept.SequenceEndOfPage()...)
			if _, err := l.Term.Write(msg); err != nil {
				return err
			}
			if err := l.Term.Flush(); err != nil {
				return err
			}
		}

		desiredPageID = ""

		formSpec := currentForm
		if formSpec == nil {
			linkKeys := make([]string, 0, len(links))
			for k := range links {
				if k != "#" {
					linkKeys = append(linkKeys, k)
				}
			}
			synth := meta.DefaultNavigationForm(linkKeys)
			formSpec = &synth
		}

		driver := &form.Driver{
			Term:         l.Term,
			Validators:   l.Validators,
			Targets:      l.Targets,
			Builtins:     validate.Builtins{Store: l.Store, OnLogin: l.onLogin},
			Messaging:    l.Messaging,
			SenderUserID: l.Session.UserID,
		}

		outcome, err := driver.Run(*formSpec)
		if err != nil {
			return err
		}

		errorCode = 0

		if outcome.IsCommand {
			desiredPageID = outcome.Command
			continue
		}

		val := outcome.Values["$navigation"]
		if link, ok := links[val]; ok {
			desiredPageID = link
		} else if val == "" {
			if hash, ok := links["#"]; ok {
				desiredPageID = hash
			} else {
				next, err := pageid.Successor(l.Session.CurrentPageID)
				if err != nil {
					errorCode = sysmsg.SubpageNotFound
				} else {
					desiredPageID = next
				}
			}
		} else {
			errorCode = sysmsg.PageNotFound
		}

		currentForm = nil
		links = nil
	}
}

func (l *Loop) onLogin(u *userstore.User) {
	l.Session.Login(u.ID)
}
