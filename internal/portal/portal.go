// File: internal/portal/portal.go

// Package portal implements the five pipeline stages against the remote
// portal: session bootstrap, workload initialization, the question wizard
// walk, artifact capture, and teardown. The portal itself is an opaque
// remote system; everything here observes it only through DOM state.
package portal

import (
	"errors"

	"go.uber.org/zap"

	"warwalk/internal/browser"
	"warwalk/internal/config"
	"warwalk/internal/prompt"
)

var (
	// ErrLoginFailed indicates credential rejection or an MFA prompt that
	// never became answerable.
	ErrLoginFailed = errors.New("login failed")
	// ErrAutomation indicates a UI-interaction failure or a remote-outcome
	// mismatch during the run: a stalled page, a wrong section count, a
	// missing artifact.
	ErrAutomation = errors.New("automation error")
	// ErrDeclined indicates the operator chose not to continue at one of
	// the interactive decision points. It maps to a normal exit.
	ErrDeclined = errors.New("run declined by operator")
)

// Portal drives the remote service through a single browser session.
type Portal struct {
	s      *browser.Session
	cfg    config.PortalConfig
	prompt prompt.Prompter
	logger *zap.Logger
}

// New binds the stages to a session, timing configuration, and operator
// prompter.
func New(s *browser.Session, cfg config.PortalConfig, pr prompt.Prompter, logger *zap.Logger) *Portal {
	return &Portal{
		s:      s,
		cfg:    cfg,
		prompt: pr,
		logger: logger.Named("portal"),
	}
}
