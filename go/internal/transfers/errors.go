package transfers

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by App matches exactly one of these with errors.Is.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrRejected       = errors.New("rejected")
	ErrConflict       = errors.New("conflict")
	ErrInfrastructure = errors.New("infrastructure failure")
)

// Rule names the business rule a request violated.
type Rule string

const (
	RuleInvalidRequest     Rule = "invalid_request"
	RuleInvalidPrice       Rule = "invalid_price"
	RuleRosterFloor        Rule = "roster_floor"
	RuleRosterCeiling      Rule = "roster_ceiling"
	RuleDuplicateListing   Rule = "duplicate_listing"
	RuleSelfPurchase       Rule = "self_purchase"
	RuleInsufficientBudget Rule = "insufficient_budget"
	RuleNotAvailable       Rule = "not_available"
	RuleNotPending         Rule = "not_pending"
	RuleSellerRosterFloor  Rule = "seller_roster_floor"
)

// Error is the error type returned by the transfer market.
type Error struct {
	Kind    error
	Rule    Rule
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// RuleOf returns the violated rule carried by err, or "" if there is none.
func RuleOf(err error) Rule {
	var e *Error
	if errors.As(err, &e) {
		return e.Rule
	}
	return ""
}

func notFound(format string, args ...any) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...any) *Error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func rejected(rule Rule, format string, args ...any) *Error {
	return &Error{Kind: ErrRejected, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

func invalidRequest(format string, args ...any) *Error {
	return rejected(RuleInvalidRequest, format, args...)
}

func conflict(err error) *Error {
	return &Error{Kind: ErrConflict, Message: "transfer market is busy, retry the request", Err: err}
}

func infrastructure(msg string, err error) *Error {
	return &Error{Kind: ErrInfrastructure, Message: msg, Err: err}
}
