package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrConfiguration is the class of every catalog or profile problem.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrEmptyCatalog is returned when the catalog lists no distributions.
	ErrEmptyCatalog = zerr.New("catalog has no distributions")

	// ErrDuplicateDistribution is returned when a distribution is listed twice.
	ErrDuplicateDistribution = zerr.New("duplicate distribution")

	// ErrDuplicateVariant is returned when a build variant is listed twice.
	ErrDuplicateVariant = zerr.New("duplicate build variant")

	// ErrInvalidName is returned for names that are empty or would break the document syntax.
	ErrInvalidName = zerr.New("invalid name")

	// ErrInvalidValue is returned for values that would spill onto another line of the document.
	ErrInvalidValue = zerr.New("value spans multiple lines")

	// ErrTooManyRecords is returned when a role group would need labels wider than two digits.
	ErrTooManyRecords = zerr.New("too many records for two-digit labels")

	// ErrNoGroups is returned when the profile declares no group flags.
	ErrNoGroups = zerr.New("profile declares no group flags")

	// ErrDuplicateGroup is returned when a group flag is declared twice.
	ErrDuplicateGroup = zerr.New("duplicate group flag")

	// ErrInvalidTemplate is returned when the post-create template cannot be used.
	ErrInvalidTemplate = zerr.New("invalid postcreate template")

	// ErrHostnameNotReferenced is returned when the post-create template ignores the record hostname.
	ErrHostnameNotReferenced = zerr.New("template does not reference .Hostname")

	// ErrUnsupportedVersion is returned for catalog files with an unknown schema version.
	ErrUnsupportedVersion = zerr.New("unsupported catalog version")

	// ErrOutputOutOfDate is returned by check when the output file does not match the catalog.
	ErrOutputOutOfDate = zerr.New("output is out of date")

	// ErrOutputRequired is returned when a command needs an output file and none was given.
	ErrOutputRequired = zerr.New("output path required")
)

// ConfigurationError describes a catalog or profile entry that cannot be generated.
// It matches both ErrConfiguration and its Reason with errors.Is.
type ConfigurationError struct {
	Reason error
	Field  string
	Value  string
	Cause  error
}

func newConfigurationError(reason error, field, value string) *ConfigurationError {
	return &ConfigurationError{Reason: reason, Field: field, Value: value}
}

func withCause(e *ConfigurationError, cause error) *ConfigurationError {
	e.Cause = cause
	return e
}

func (e *ConfigurationError) Error() string {
	msg := e.Reason.Error()
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the configuration class, the reason and the cause.
func (e *ConfigurationError) Unwrap() []error {
	errs := []error{ErrConfiguration, e.Reason}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}
