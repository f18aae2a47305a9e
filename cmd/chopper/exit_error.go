// SPDX-License-Identifier: MPL-2.0

package cmd

// ExitError signals a non-zero exit code without forcing os.Exit inside
// RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error { return e.Err }
