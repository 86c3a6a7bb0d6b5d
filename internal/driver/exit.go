// File: internal/driver/exit.go
package driver

import (
	"errors"

	"warwalk/internal/browser"
	"warwalk/internal/portal"
	"warwalk/internal/review"
)

// Process exit codes. Each failure class gets its own code so wrapping
// scripts can react without parsing output.
const (
	ExitOK           = 0
	ExitDependency   = 1
	ExitNoBrowser    = 2
	ExitSetup        = 3
	ExitInvalidInput = 4
	ExitLoginFailed  = 5
	ExitAutomation   = 6
)

// ExitCodeFor maps a run error to its process exit code. A declined prompt
// is a normal exit: the operator chose to stop, nothing failed.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, portal.ErrDeclined):
		return ExitOK
	case errors.Is(err, browser.ErrDependency):
		return ExitDependency
	case errors.Is(err, browser.ErrBrowserNotFound):
		return ExitNoBrowser
	case errors.Is(err, review.ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, portal.ErrLoginFailed):
		return ExitLoginFailed
	case errors.Is(err, browser.ErrSetup):
		return ExitSetup
	case errors.Is(err, portal.ErrAutomation), errors.Is(err, browser.ErrElementWait):
		return ExitAutomation
	default:
		return ExitAutomation
	}
}
