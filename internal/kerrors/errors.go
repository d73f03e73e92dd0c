// Package kerrors defines the three error kinds spec.md §7 names:
// grammar-hole failure, synthesis failure, and verification failure.
// The shape — a small Message embedded in typed wrapper errors, unwrappable
// via the standard errors package — is grounded on cuelang-cue's
// cue/errors package (Message / Error interface).
package kerrors

import (
	"fmt"
)

// Message is the common payload every Katara error embeds: a format
// string and its arguments, rendered by Error().
type Message struct {
	format string
	args   []any
}

func NewMessage(format string, args ...any) Message {
	return Message{format: format, args: args}
}

func (m Message) Msg() (string, []any) { return m.format, m.args }

func (m Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// GrammarHoleError reports that auto_grammar's pool lacked a requested
// type during expansion. Per spec.md §7 this is never fatal: the driver's
// dry-run gate catches it and skips the candidate.
type GrammarHoleError struct {
	Message
	Type string
}

func NewGrammarHoleError(typ string) *GrammarHoleError {
	return &GrammarHoleError{
		Message: NewMessage("grammar hole: no pool entry for type %s", typ),
		Type:    typ,
	}
}

// SynthesisFailedError reports that the backend found no candidate within
// the current grammar. Triggers the refinement loop (spec.md §4.4).
type SynthesisFailedError struct {
	Message
	ListBound int
}

func NewSynthesisFailedError(listBound int, reason string) *SynthesisFailedError {
	return &SynthesisFailedError{
		Message:   NewMessage("synthesis failed at listBound=%d: %s", listBound, reason),
		ListBound: listBound,
	}
}

// VerificationFailedError reports that the backend's candidate failed the
// unbounded check; the driver always increases listBound and recurses.
type VerificationFailedError struct {
	Message
	ListBound int
}

func NewVerificationFailedError(listBound int) *VerificationFailedError {
	return &VerificationFailedError{
		Message:   NewMessage("verification failed at listBound=%d", listBound),
		ListBound: listBound,
	}
}
