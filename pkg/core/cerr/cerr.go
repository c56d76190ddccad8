// Package cerr represents the core layer errors.
// It enumerates the error kinds a mapping request may fail with and
// assigns each one an HTTPStatusCode, so the HTTP front-end can
// classify and report them without inspecting error strings, and so
// the CLI front-end can print a short human-readable message.
// These are error kinds, not a single error type: each kind below is
// its own Go type implementing error (and Unwrap, for the kinds that
// wrap a cause), constructed through the matching helper function.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents an error, aka Err, and assigns a HTTPStatusCode
// http status code to that error based on its generic category.
type Error struct {
	Err            error
	HTTPStatusCode int
}

// Unwrap returns the wrapped inner error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error implements the error interface, returning a string
// representation of the Error instance.
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// ParseError indicates malformed input in any codec or parser, at the
// given context (e.g. a file path or format name) and, when known,
// the byte or line position where parsing failed.
type ParseError struct {
	Context  string
	Position int // -1 when unknown
	Cause    error
}

// NewParseError wraps cause as a ParseError occurring in context, at
// position (or -1 if the position is not tracked by the caller).
func NewParseError(context string, position int, cause error) *ParseError {
	return &ParseError{Context: context, Position: position, Cause: cause}
}

func (e *ParseError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("parse error in %s at %d: %s", e.Context, e.Position, e.Cause)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Context, e.Cause)
}

// Unwrap returns the wrapped cause.
func (e *ParseError) Unwrap() error { return e.Cause }

// InvalidIdentifier indicates text which could not be parsed as the
// named kind of identifier (GameVersion, McpVersionSpec, TargetMapping,
// MappingSystem, McpChannel, or TargetFlags).
type InvalidIdentifier struct {
	Kind string
	Text string
}

// NewInvalidIdentifier reports text as an invalid identifier of kind.
func NewInvalidIdentifier(kind, text string) *InvalidIdentifier {
	return &InvalidIdentifier{Kind: kind, Text: text}
}

func (e *InvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Text)
}

// UnknownGameVersion indicates that upstream returned a 404 for the
// version-info endpoint of the named game version.
type UnknownGameVersion struct {
	Version string
}

// NewUnknownGameVersion reports version as unknown upstream.
func NewUnknownGameVersion(version string) *UnknownGameVersion {
	return &UnknownGameVersion{Version: version}
}

func (e *UnknownGameVersion) Error() string {
	return fmt.Sprintf("unknown game version %s", e.Version)
}

// UnknownMcpVersion indicates that a requested McpVersion is not
// present in the downloaded MCP version index.
type UnknownMcpVersion struct {
	Spec string
}

// NewUnknownMcpVersion reports spec as an unknown MCP version.
func NewUnknownMcpVersion(spec string) *UnknownMcpVersion {
	return &UnknownMcpVersion{Spec: spec}
}

func (e *UnknownMcpVersion) Error() string {
	return fmt.Sprintf("unknown MCP version %s", e.Spec)
}

// HTTPNotFound indicates a transport-level 404 response.
type HTTPNotFound struct {
	URL string
}

// NewHTTPNotFound reports url as having answered with 404.
func NewHTTPNotFound(url string) *HTTPNotFound {
	return &HTTPNotFound{URL: url}
}

func (e *HTTPNotFound) Error() string {
	return fmt.Sprintf("404 not found: %s", e.URL)
}

// HTTPTransport indicates any other transport-layer HTTP failure
// (non-2xx status code or a client/network error).
type HTTPTransport struct {
	URL   string
	Cause error
}

// NewHTTPTransport wraps cause as a transport failure fetching url.
func NewHTTPTransport(url string, cause error) *HTTPTransport {
	return &HTTPTransport{URL: url, Cause: cause}
}

func (e *HTTPTransport) Error() string {
	return fmt.Sprintf("transport error fetching %s: %s", e.URL, e.Cause)
}

// Unwrap returns the wrapped cause.
func (e *HTTPTransport) Unwrap() error { return e.Cause }

// IOError indicates a filesystem or other local I/O failure.
type IOError struct {
	Op    string
	Cause error
}

// NewIOError wraps cause as an I/O failure during op.
func NewIOError(op string, cause error) *IOError {
	return &IOError{Op: op, Cause: cause}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error during %s: %s", e.Op, e.Cause)
}

// Unwrap returns the wrapped cause.
func (e *IOError) Unwrap() error { return e.Cause }

// GitError indicates a clone, fetch, or commit-lookup failure.
type GitError struct {
	Op    string
	Cause error
}

// NewGitError wraps cause as a git failure during op.
func NewGitError(op string, cause error) *GitError {
	return &GitError{Op: op, Cause: cause}
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git error during %s: %s", e.Op, e.Cause)
}

// Unwrap returns the wrapped cause.
func (e *GitError) Unwrap() error { return e.Cause }

// MappingsInvariantViolation indicates that an algebra operation could
// not preserve the Mappings invariants (e.g. inverting a non-injective
// table, or a mismatched declaring class).
type MappingsInvariantViolation struct {
	Reason string
}

// NewMappingsInvariantViolation reports reason as a broken invariant.
func NewMappingsInvariantViolation(reason string) *MappingsInvariantViolation {
	return &MappingsInvariantViolation{Reason: reason}
}

func (e *MappingsInvariantViolation) Error() string {
	return fmt.Sprintf("mappings invariant violated: %s", e.Reason)
}

// TargetComputeError wraps any of the above with the TargetMapping
// string whose computation failed.
type TargetComputeError struct {
	Target string
	Cause  error
}

// NewTargetComputeError wraps cause as having occurred while computing
// target.
func NewTargetComputeError(target string, cause error) *TargetComputeError {
	return &TargetComputeError{Target: target, Cause: cause}
}

func (e *TargetComputeError) Error() string {
	return fmt.Sprintf("unable to compute %s: %s", e.Target, e.Cause)
}

// Unwrap returns the wrapped cause.
func (e *TargetComputeError) Unwrap() error { return e.Cause }

// UnknownCommand indicates an engine input naming an operation that
// does not exist (a CLI/HTTP front-end input error).
type UnknownCommand struct {
	Name string
}

// NewUnknownCommand reports name as an unrecognized command.
func NewUnknownCommand(name string) *UnknownCommand {
	return &UnknownCommand{Name: name}
}

func (e *UnknownCommand) Error() string {
	return fmt.Sprintf("unknown command %q", e.Name)
}

// MissingMcpVersion indicates that a TargetMapping needing an MCP
// version was computed without one being supplied.
type MissingMcpVersion struct{}

// NewMissingMcpVersion reports a missing MCP version.
func NewMissingMcpVersion() *MissingMcpVersion {
	return &MissingMcpVersion{}
}

func (e *MissingMcpVersion) Error() string {
	return "unspecified MCP version"
}

// BadRequest wraps err and marks it as a bad request, that is, the
// caller of the function which is returning this error is responsible
// for that error and may fix it by modifying the args of that function.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// NotFound wraps err and marks it as a not found issue, that is, the
// requested object does not exist.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Internal wraps err and marks it as an unclassified internal issue.
func Internal(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusInternalServerError}
}

// Classify wraps err with the HTTPStatusCode matching its error kind,
// so the HTTP front-end can report it without repeating this dispatch.
// err is unwrapped (e.g. through a *TargetComputeError) to find the
// first recognized kind. Unrecognized error kinds are classified as
// Internal. A *Error already classified by the caller is returned
// unchanged.
func Classify(err error) *Error {
	var already *Error
	var ugv *UnknownGameVersion
	var umv *UnknownMcpVersion
	var hnf *HTTPNotFound
	var ii *InvalidIdentifier
	var pe *ParseError
	var mmv *MissingMcpVersion
	var uc *UnknownCommand

	switch {
	case errors.As(err, &already):
		return already
	case errors.As(err, &ugv), errors.As(err, &umv), errors.As(err, &hnf):
		return NotFound(err)
	case errors.As(err, &ii), errors.As(err, &pe), errors.As(err, &mmv), errors.As(err, &uc):
		return BadRequest(err)
	default:
		return Internal(err)
	}
}
