// Package vaulterrors implements the stable error taxonomy every layer of
// timevault converts its failures into. Every kind shares one typed struct,
// Error, tagged by its Kind field rather than a sentinel value, mirroring the teacher's
// internal/registry/store error types, so callers can use errors.As to
// recover structured detail (e.g. which field of a VEF failed validation)
// while still testing against a stable Kind string for the message.
package vaulterrors

import "fmt"

// Kind names one of the taxonomy's stable, human-testable failure classes.
type Kind string

const (
	KindNetworkUnavailable Kind = "NetworkUnavailable"
	KindRoundNotYet        Kind = "RoundNotYet"
	KindBeaconInvalid      Kind = "BeaconInvalid"
	KindTimelockAuthFail   Kind = "TimelockAuthFail"
	KindAEADAuthFail       Kind = "AEADAuthFail"
	KindMalformedEncoding  Kind = "MalformedEncoding"
	KindMalformedEnvelope  Kind = "MalformedEnvelope"
	KindVEFInvalid         Kind = "VEFInvalid"
	KindUnlockInPast       Kind = "UnlockInPast"
	KindStorageFailure     Kind = "StorageFailure"
)

// Error is the concrete type every taxonomy member implements. Detail carries
// the lower-layer diagnostic string; Field is populated only for VEFInvalid.
type Error struct {
	Kind    Kind
	Field   string
	Detail  string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Field, e.Detail)
	}
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Retryable reports whether the retry policy (C10) may retry a failure of
// this kind. Only NetworkUnavailable is transient.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetworkUnavailable
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return &Error{Kind: kind}
	}
	return &Error{Kind: kind, Detail: err.Error(), Wrapped: err}
}

// VEFInvalid reports a schema violation against a specific field path.
func VEFInvalid(field, detail string) *Error {
	return &Error{Kind: KindVEFInvalid, Field: field, Detail: detail}
}

// Is allows errors.Is(err, vaulterrors.KindAEADAuthFail) style comparisons by
// matching on Kind when the target is itself a *Error with no detail set.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Detail == "" && t.Field == ""
}

// KindOf extracts the Kind of err if it is a *Error or wraps one through a
// chain of single-error Unwrap methods, and false otherwise. Multi-error
// wrappers such as errors.Join are not searched.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return "", false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
