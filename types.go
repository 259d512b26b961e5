package xsdfacet

import "strings"

// TypeTag names one schema-defined type, e.g. "gml:ArcMinutesType" or
// "xs:nonNegativeInteger". Tags are stable across a schema version and are
// compared for equality only.
type TypeTag string

// Prefix returns the namespace prefix of the tag ("gml" for "gml:Foo").
func (t TypeTag) Prefix() string {
	if i := strings.IndexByte(string(t), ':'); i >= 0 {
		return string(t[:i])
	}
	return ""
}

// Local returns the local part of the tag ("Foo" for "gml:Foo").
func (t TypeTag) Local() string {
	if i := strings.IndexByte(string(t), ':'); i >= 0 {
		return string(t[i+1:])
	}
	return string(t)
}

// UnknownPolicy controls how a Dispatcher treats tags it has no entry for.
type UnknownPolicy int

const (
	// UnknownPermissive treats an unknown tag as "nothing to check" and
	// reports the value as valid. A type added to a schema without a
	// matching entry is therefore silently accepted.
	UnknownPermissive UnknownPolicy = iota
	// UnknownReject reports an unknown tag as invalid with CodeUnknownType.
	UnknownReject
)

// Severity expresses the severity level of a diagnostic.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Ignore:
		return "ignore"
	case Warn:
		return "warning"
	default:
		return "error"
	}
}

// MarshalText renders the severity by name.
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Options configures a Dispatcher.
type Options struct {
	// UnknownTypes decides what happens for tags with no registered Func.
	UnknownTypes UnknownPolicy
}
