// File: internal/portal/logout.go
package portal

import (
	"context"

	"go.uber.org/zap"
)

// Logout signs the session out of the console. It is best-effort teardown:
// a failure is logged and swallowed since it runs on every exit path,
// including ones where the sign-in never happened.
func (p *Portal) Logout(ctx context.Context) {
	if err := p.s.Click(ctx, selUserMenu, p.cfg.ElementWait); err != nil {
		p.logger.Debug("Logout skipped, user menu unavailable.", zap.Error(err))
		return
	}
	if err := p.s.Click(ctx, selSignOut, p.cfg.ElementWait); err != nil {
		p.logger.Warn("Logout failed.", zap.Error(err))
		return
	}
	p.logger.Info("Signed out.")
}
