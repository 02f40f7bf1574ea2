package model

import "time"

// Code identifies the kind of a diagnostic.
type Code string

// Diagnostic codes.
const (
	CodeMissingCases              Code = "MissingCases"
	CodeWrongParameterName        Code = "WrongParameterName"
	CodeMissingParameterCase      Code = "MissingParameterCase"
	CodeWrongParameterType        Code = "WrongParameterType"
	CodeWrongParameterPath        Code = "WrongParameterPath"
	CodeMinShouldBeLessThanMax    Code = "MinShouldBeLessThanMax"
	CodeNotAConstant              Code = "NotAConstant"
	CodeNotADateCreation          Code = "NotADateCreation"
	CodeNotAConstantPropertyField Code = "NotAConstantPropertyField"
	CodeUnknownMember             Code = "UnknownMember"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	// SevError is for malformed declarations.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}

	return "unknown"
}

// Diagnostic is one finding about a member or one of its cases.
type Diagnostic struct {
	Code      Code       `yaml:"code" msgpack:"code"`
	Severity  Severity   `yaml:"severity" msgpack:"severity"`
	Member    string     `yaml:"member" msgpack:"member"`
	Message   string     `yaml:"message" msgpack:"message"`
	Missing   []string   `yaml:"missing,omitempty" msgpack:"missing"`
	Locations []Location `yaml:"locations,omitempty" msgpack:"locations"`
}

// MemberReport holds the analysis result of one member.
type MemberReport struct {
	Member      string       `yaml:"member" msgpack:"member"`
	Cases       int          `yaml:"cases" msgpack:"cases"`
	Diagnostics []Diagnostic `yaml:"diagnostics,omitempty" msgpack:"diagnostics"`
	// ErrorCases lists the leaves declared as expected failures.
	ErrorCases []string `yaml:"error_cases,omitempty" msgpack:"error_cases"`
}

// Complete reports whether the member has no diagnostics at all.
func (r MemberReport) Complete() bool {
	return len(r.Diagnostics) == 0
}

// Missing returns the MissingCases diagnostic, if any.
func (r MemberReport) Missing() (Diagnostic, bool) {
	for _, d := range r.Diagnostics {
		if d.Code == CodeMissingCases {
			return d, true
		}
	}

	return Diagnostic{}, false
}

// Run is one stored check execution.
type Run struct {
	ID        string         `yaml:"id" msgpack:"id"`
	CreatedAt time.Time      `yaml:"created_at" msgpack:"created_at"`
	Reports   []MemberReport `yaml:"reports" msgpack:"reports"`
}

// MemberSummary describes a member for listings.
type MemberSummary struct {
	Signature  string
	Kind       MemberKind
	Parameters int
	Cases      int
}
