// Package validate implements field and form-level validation and target
// dispatch. The original source resolves tags like "call:Class.method" by
// looking the class up in its globals and calling the named method by
// reflection; this package replaces that with an explicit registry
// mapping string tags to typed Go functions. A tag is looked up in its
// registry when the field or target naming it is reached; the tags of a
// page are not checked when the page is loaded.
package validate

import (
	"fmt"
	"strings"

	"github.com/dostermann/bildschirmtext/userstore"
)

// Outcome is a field validation result.
type Outcome int

const (
	// OK advances to the next field.
	OK Outcome = iota
	// Bad re-displays the field after showing a message and waiting for TER.
	Bad
	// Restart clears all accumulated input and restarts the form from field 0.
	Restart
)

// Result is a validation outcome plus the message to show for Bad/Restart.
type Result struct {
	Outcome Outcome
	Message string
}

// Func is a custom validator registered under a "call:Class.method" tag.
type Func func(input map[string]string) Result

// Registry maps "call:Class.method" tags to validator functions. A tag is
// looked up when a user reaches the field that names it; nothing checks a
// page's tags when the page is loaded. The form driver treats an
// unregistered validator tag as a Bad result.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry creates an empty validator Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Func{}}
}

// Register binds tag (e.g. "call:Login.checkPassword") to fn.
func (r *Registry) Register(tag string, fn Func) {
	r.funcs[tag] = fn
}

// Lookup resolves tag, reporting ok=false for an unregistered tag.
func (r *Registry) Lookup(tag string) (Func, bool) {
	fn, ok := r.funcs[tag]
	return fn, ok
}

// IsCallTag reports whether validate names a registry-dispatched
// validator rather than a built-in "special" type.
func IsCallTag(validate string) bool {
	return strings.HasPrefix(validate, "call:")
}

// Builtins evaluates the fixed set of "special" field types the original
// source hard-codes: user_id / ext existence checks against a UserStore,
// and the $login_password type that performs the actual login.
type Builtins struct {
	Store userstore.UserStore
	// OnLogin is called with the authenticated user on a successful
	// $login_password check.
	OnLogin func(user *userstore.User)
}

// Validate evaluates input against special, the field's "special" tag.
// An empty special always succeeds (matching the original's else-branch).
func (b Builtins) Validate(special string, input map[string]string) Result {
	switch special {
	case "user_id":
		if b.Store.Exists(input["user_id"], "") {
			return Result{Outcome: OK}
		}
		return Result{Outcome: Bad, Message: "Teilnehmerkennung ungültig! -> #"}

	case "ext":
		ext := input["ext"]
		if ext == "" {
			ext = "1"
		}
		if b.Store.Exists(input["user_id"], ext) {
			return Result{Outcome: OK}
		}
		return Result{Outcome: Bad, Message: "Mitbenutzernummer ungültig! -> #"}

	case "$login_password":
		ext := input["ext"]
		if ext == "" {
			ext = "1"
		}
		user, err := b.Store.Login(input["user_id"], ext, input["password"], false)
		if err != nil || user == nil {
			return Result{Outcome: Restart, Message: "Ungültiger Teilnehmer/Kennwort -> #"}
		}
		if b.OnLogin != nil {
			b.OnLogin(user)
		}
		return Result{Outcome: OK}

	default:
		return Result{Outcome: OK}
	}
}

// Target is a registered "call:Class.method" form target: given the
// form's collected input, it returns the gateway command to navigate to.
type Target func(input map[string]string) (string, error)

// TargetRegistry maps "call:Class.method" target tags to functions.
type TargetRegistry struct {
	funcs map[string]Target
}

// NewTargetRegistry creates an empty TargetRegistry.
func NewTargetRegistry() *TargetRegistry {
	return &TargetRegistry{funcs: map[string]Target{}}
}

// Register binds tag to fn.
func (r *TargetRegistry) Register(tag string, fn Target) {
	r.funcs[tag] = fn
}

// Resolve dispatches target, which is one of:
//   - "page:<id>"       -> returns <id> directly
//   - "call:Class.method" -> looked up in the registry
//
// Any other shape is a configuration error.
func (r *TargetRegistry) Resolve(target string, input map[string]string) (string, error) {
	switch {
	case strings.HasPrefix(target, "page:"):
		return strings.TrimPrefix(target, "page:"), nil
	case strings.HasPrefix(target, "call:"):
		fn, ok := r.funcs[target]
		if !ok {
			return "", fmt.Errorf("validate: unregistered target %q", target)
		}
		return fn(input)
	default:
		return "", fmt.Errorf("validate: malformed target %q", target)
	}
}
