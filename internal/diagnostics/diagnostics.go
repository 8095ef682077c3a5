// Package diagnostics defines the checker's diagnostic kinds: syntax,
// name, arity, assignability, duplicate and scope errors, plus shadow
// warnings. Diagnostics accumulate into an ordered, deduplicated list;
// checking never stops on the first error.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/funvibe/typedlua/internal/token"
)

// Severity distinguishes errors (which fail the session) from warnings
// (which do not).
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Code is a stable diagnostic code, grouped by kind. The prefix mirrors
// the kind so a reader can tell severity-class from the code alone.
type Code string

const (
	ErrSyntax         Code = "E-SYN"
	ErrNameUndeclared Code = "E-NAM1"
	ErrTypeUndeclared Code = "E-NAM2"
	ErrArityTooFew    Code = "E-ARI1"
	ErrArityTooMany   Code = "E-ARI2"
	ErrAssignability  Code = "E-ASN"
	ErrDuplicateField Code = "E-DUP1"
	ErrDuplicateDecl  Code = "W-DUP2"
	ErrShadow         Code = "W-SHD"
	ErrDotsDisabled   Code = "E-SCP1"
	ErrSelfOutside    Code = "E-SCP2"
	ErrBreakOutside   Code = "E-SCP3"
	ErrInternal       Code = "E-INT"
)

// severityOf returns the default severity for a code. Callers may still
// override it explicitly via New.
func severityOf(c Code) Severity {
	if len(c) > 0 && c[0] == 'W' {
		return Warning
	}
	return Error
}

// Diagnostic is a single checker finding: a code, severity, primary
// location and a human-readable, possibly multi-line message. For
// assignability failures the message already contains the full bottom-up
// crumb chain, joined into one string.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Location token.Location
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s [%s]: %s", d.Location.FirstLine, d.Location.FirstColumn, d.Severity, d.Code, d.Message)
}

// New builds a Diagnostic with the default severity for code, formatting
// message with args like fmt.Sprintf.
func New(code Code, at token.Token, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severityOf(code),
		Location: at.Loc(),
		Message:  fmt.Sprintf(format, args...),
	}
}

// Newf is like New but takes an explicit Location instead of a Token.
func Newf(code Code, loc token.Location, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severityOf(code),
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Bag accumulates Diagnostics for one checking session, deduplicating by
// (line, column, code) so a single cascading failure does not produce a
// wall of repeated messages.
type Bag struct {
	byKey map[string]Diagnostic
	order []string
}

// NewBag creates an empty diagnostic accumulator.
func NewBag() *Bag {
	return &Bag{byKey: make(map[string]Diagnostic)}
}

// Add records d, the most recent report for a given key wins.
func (b *Bag) Add(d Diagnostic) {
	key := fmt.Sprintf("%d:%d:%s", d.Location.FirstLine, d.Location.FirstColumn, d.Code)
	if _, exists := b.byKey[key]; !exists {
		b.order = append(b.order, key)
	}
	b.byKey[key] = d
}

// AddAll records every diagnostic in ds.
func (b *Bag) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		b.Add(d)
	}
}

// All returns the accumulated diagnostics in source order (line, then
// column).
func (b *Bag) All() []Diagnostic {
	result := make([]Diagnostic, 0, len(b.byKey))
	for _, k := range b.order {
		result = append(result, b.byKey[k])
	}
	sort.SliceStable(result, func(i, j int) bool {
		li, lj := result[i].Location, result[j].Location
		if li.FirstLine != lj.FirstLine {
			return li.FirstLine < lj.FirstLine
		}
		return li.FirstColumn < lj.FirstColumn
	})
	return result
}

// HasErrors reports whether any accumulated diagnostic has Error severity.
// The CLI's exit code is 0 iff this is false.
func (b *Bag) HasErrors() bool {
	for _, d := range b.byKey {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
