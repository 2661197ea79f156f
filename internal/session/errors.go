package session

import (
	"errors"
	"fmt"

	"github.com/temirov/clidriver/internal/versioning"
)

const (
	versionProbeFailedMessageConstant     = "tool version probe failed"
	versionRangeRejectedMessageConstant   = "tool version outside supported range"
	versionProbeErrorTemplateConstant     = "could not determine %s version: %v"
	versionRangeErrorTemplateConstant     = "detected version %s is outside supported range [%s, %s)"
	runnerCreationErrorTemplateConstant   = "unable to create command runner for %s: %w"
	responseDecodingErrorTemplateConstant = "unable to decode %s output as JSON: %v"
)

var (
	// ErrVersionProbeFailed matches every VersionProbeError.
	ErrVersionProbeFailed = errors.New(versionProbeFailedMessageConstant)
	// ErrVersionRangeRejected matches every VersionRangeError.
	ErrVersionRangeRejected = errors.New(versionRangeRejectedMessageConstant)
)

// VersionProbeError reports that the version probe could not run or exited unsuccessfully.
type VersionProbeError struct {
	Executable string
	Cause      error
}

// Error describes the probe failure.
func (probeError VersionProbeError) Error() string {
	return fmt.Sprintf(versionProbeErrorTemplateConstant, probeError.Executable, probeError.Cause)
}

// Unwrap exposes the underlying failure.
func (probeError VersionProbeError) Unwrap() error {
	return probeError.Cause
}

// Is reports whether target is ErrVersionProbeFailed.
func (probeError VersionProbeError) Is(target error) bool {
	return target == ErrVersionProbeFailed
}

// VersionRangeError reports a detected version outside [Minimum, Maximum).
type VersionRangeError struct {
	Minimum  string
	Maximum  string
	Detected string
}

// Error describes the rejected version.
func (rangeError VersionRangeError) Error() string {
	return fmt.Sprintf(versionRangeErrorTemplateConstant, rangeError.Detected, rangeError.Minimum, rangeError.Maximum)
}

// AcceptedRange renders the interval the detected version missed.
func (rangeError VersionRangeError) AcceptedRange() string {
	return versioning.Range{Minimum: rangeError.Minimum, Maximum: rangeError.Maximum}.String()
}

// Is reports whether target is ErrVersionRangeRejected.
func (rangeError VersionRangeError) Is(target error) bool {
	return target == ErrVersionRangeRejected
}

// ResponseDecodingError reports stdout that could not be decoded as JSON.
type ResponseDecodingError struct {
	Executable string
	Cause      error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Executable, decodingError.Cause)
}

// Unwrap exposes the decoder failure.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}
