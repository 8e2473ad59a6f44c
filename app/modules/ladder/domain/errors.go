package ladderdomain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound           ErrorKind = "not_found"
	KindAlreadyInCategory  ErrorKind = "already_in_category"
	KindDuplicatePending   ErrorKind = "duplicate_pending"
	KindInvalidTransition  ErrorKind = "invalid_transition"
	KindEligibilityDenied  ErrorKind = "eligibility_denied"
	KindConstraintConflict ErrorKind = "constraint_conflict"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindCategoryMismatch   ErrorKind = "category_mismatch"
	KindValidation         ErrorKind = "validation"
)

// Error is a ladder domain failure. Kind drives both status mapping and the user message.
type Error struct {
	Kind    ErrorKind
	Reason  DenialReason
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Reason != "" {
		msg += " (" + string(e.Reason) + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind. A target carrying a reason must match it too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Kind sentinels for errors.Is.
var (
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrAlreadyInCategory  = &Error{Kind: KindAlreadyInCategory}
	ErrDuplicatePending   = &Error{Kind: KindDuplicatePending}
	ErrInvalidTransition  = &Error{Kind: KindInvalidTransition}
	ErrEligibilityDenied  = &Error{Kind: KindEligibilityDenied}
	ErrConstraintConflict = &Error{Kind: KindConstraintConflict}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrCategoryMismatch   = &Error{Kind: KindCategoryMismatch}
	ErrValidation         = &Error{Kind: KindValidation}
)

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func AlreadyInCategory(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyInCategory, Message: fmt.Sprintf(format, args...)}
}

func DuplicatePending(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicatePending, Message: fmt.Sprintf(format, args...)}
}

func InvalidTransition(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf(format, args...)}
}

func EligibilityDenied(reason DenialReason) *Error {
	return &Error{Kind: KindEligibilityDenied, Reason: reason}
}

func ConstraintConflict(err error) *Error {
	return &Error{Kind: KindConstraintConflict, Err: err}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func CategoryMismatch(format string, args ...any) *Error {
	return &Error{Kind: KindCategoryMismatch, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a domain error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ReasonOf returns the eligibility reason carried by err, if any.
func ReasonOf(err error) DenialReason {
	var de *Error
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

var kindMessages = map[ErrorKind]string{
	KindNotFound:           "We couldn't find that team, ranking, challenge or request.",
	KindAlreadyInCategory:  "This team is already on the ladder for that category.",
	KindDuplicatePending:   "There is already a pending request between these teams.",
	KindInvalidTransition:  "That action is no longer possible because the request has already been answered.",
	KindEligibilityDenied:  "This challenge is not allowed.",
	KindConstraintConflict: "The ladder changed while we were saving. Please try again.",
	KindUnauthorized:       "You don't have permission to do that.",
	KindCategoryMismatch:   "Both teams must be ranked in the same category.",
	KindValidation:         "Some of the information provided is invalid.",
}

var reasonMessages = map[DenialReason]string{
	ReasonSelfChallenge:    "A team cannot challenge itself.",
	ReasonDuplicatePending: "You already have a pending challenge against this team.",
	ReasonTargetFrozen:     "This team is frozen and cannot be challenged right now.",
	ReasonIncompleteRoster: "Your team needs a partner before it can challenge.",
	ReasonNotUpward:        "You can only challenge teams ranked above you.",
	ReasonRangeExceeded:    "This team is out of your challenge range.",
}

const internalMessage = "Something went wrong on our side. Please try again later."

// UserMessage maps err to the message shown to end users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *Error
	if !errors.As(err, &de) {
		return internalMessage
	}
	if de.Kind == KindEligibilityDenied {
		if msg, ok := reasonMessages[de.Reason]; ok {
			return msg
		}
	}
	if de.Kind == KindValidation && de.Message != "" {
		return kindMessages[KindValidation] + " " + de.Message
	}
	if msg, ok := kindMessages[de.Kind]; ok {
		return msg
	}
	return internalMessage
}
