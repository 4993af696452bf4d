// Package rterr implements spec.md §7's error taxonomy as concrete Go error
// types: ConfigError and ResourceError are fatal load-time failures that
// carry file/element context; InvariantError marks a numeric invariant
// violation (non-finite value, zero-direction ray) the caller chose to
// surface rather than silently reject. Grounded on the teacher's
// plain-error-value style (Preprocess, LoadPLY, LoadPBRT all return `error`
// rather than panicking).
package rterr

import "fmt"

// ConfigError reports a malformed scene: unknown enum value, missing
// reference (material/texture/transformation id), or a structurally
// invalid XML element.
type ConfigError struct {
	File    string
	Element string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("config error in %s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("config error in %s (%s): %s", e.File, e.Element, e.Reason)
}

// NewConfigError builds a ConfigError with file and element context.
func NewConfigError(file, element, reason string) *ConfigError {
	return &ConfigError{File: file, Element: element, Reason: reason}
}

// ResourceError reports a failure to load an external asset referenced by
// the scene: an image, a PLY mesh, an EXR.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource error loading %s: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// NewResourceError wraps a lower-level load failure with the resource path.
func NewResourceError(path string, err error) *ResourceError {
	return &ResourceError{Path: path, Err: err}
}

// InvariantError marks a runtime numeric invariant violation: a non-finite
// value reaching somewhere it must not, or a zero-direction ray. Per
// spec.md §7 these are local (reject the branch/intersection) in the hot
// path; this type exists for the few call sites - e.g. camera/ray
// construction - that must report rather than silently drop.
type InvariantError struct {
	What   string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s: %s", e.What, e.Detail)
}

// NewInvariantError builds an InvariantError.
func NewInvariantError(what, detail string) *InvariantError {
	return &InvariantError{What: what, Detail: detail}
}
