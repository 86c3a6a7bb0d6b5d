// File: internal/portal/signin.go
package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"
)

// SignIn performs the session bootstrap: navigate to the sign-in URL, enter
// credentials, poll the page title until it changes away from the sign-in
// form, and answer an MFA challenge if one appears. Credential rejection and
// an unanswerable MFA prompt are login failures.
func (p *Portal) SignIn(ctx context.Context, signInURL, username, password string) error {
	if err := p.s.Navigate(ctx, signInURL); err != nil {
		return fmt.Errorf("%w: %v", ErrAutomation, err)
	}

	// Credentials never reach the logs; the fields are typed directly.
	if err := p.s.Type(ctx, selUsername, username, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: username field: %v", ErrLoginFailed, err)
	}
	if err := p.s.Type(ctx, selPassword, password, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: password field: %v", ErrLoginFailed, err)
	}
	if err := p.s.Click(ctx, selSignInButton, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: sign-in button: %v", ErrLoginFailed, err)
	}

	// The title staying on the sign-in page means either the form is still
	// processing, the credentials were rejected, or an MFA challenge has
	// been raised. Poll until the title moves on.
	mfaAnswered := false
	for {
		title, err := p.s.Title(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}
		if title != signInTitle {
			break
		}

		if err := sleepCtx(ctx, p.cfg.LoginPoll); err != nil {
			return fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}

		title, err = p.s.Title(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLoginFailed, err)
		}
		if title != signInTitle {
			break
		}

		// Credential rejection renders a visible error on the form.
		if rejected, err := p.s.Exists(ctx, selLoginError); err == nil && rejected {
			msg, _ := p.s.Text(ctx, selLoginError, p.cfg.ElementWait)
			p.logger.Error("Sign-in rejected.", zap.String("message", msg))
			return fmt.Errorf("%w: %s", ErrLoginFailed, msg)
		}

		if !mfaAnswered {
			if prompted, err := p.s.Exists(ctx, selMFACode); err == nil && prompted {
				if err := p.submitMFACode(ctx); err != nil {
					return err
				}
				mfaAnswered = true
			}
		}
	}

	p.logger.Info("Logged in.")
	return nil
}

// submitMFACode blocks on the operator for the one-time code and submits it.
func (p *Portal) submitMFACode(ctx context.Context) error {
	code, err := p.prompt.Secret("MFA Code")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	if code == "" {
		return fmt.Errorf("%w: no MFA code provided", ErrLoginFailed)
	}
	if err := p.s.Type(ctx, selMFACode, code, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: MFA code field: %v", ErrLoginFailed, err)
	}
	if err := p.s.Click(ctx, selMFASubmit, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: MFA submit: %v", ErrLoginFailed, err)
	}
	return nil
}

// SelectRegion switches the console to the given region if it is not already
// active.
func (p *Portal) SelectRegion(ctx context.Context, region string) error {
	current, err := p.s.Text(ctx, selRegionMenu, p.cfg.ElementWait)
	if err != nil {
		return fmt.Errorf("%w: region menu: %v", ErrAutomation, err)
	}
	if current == region {
		return nil
	}
	if err := p.s.Click(ctx, selRegionMenu, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: region menu: %v", ErrAutomation, err)
	}
	if err := p.s.Click(ctx, partialLinkSelector(region), p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: region '%s': %v", ErrAutomation, region, err)
	}
	p.logger.Debug("Region selected.", zap.String("region", region))
	return nil
}

// OpenService reaches the review tool through the console search box.
func (p *Portal) OpenService(ctx context.Context) error {
	if err := p.s.Type(ctx, selSearchBox, serviceName+kb.Enter, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: service search: %v", ErrAutomation, err)
	}
	p.logger.Debug("Service opened.", zap.String("service", serviceName))
	return nil
}

// sleepCtx parks the caller for d, honoring context cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
