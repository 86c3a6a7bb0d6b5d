// File: internal/portal/screen.go
package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warwalk/internal/browser"
	"warwalk/internal/config"
)

// StartReview enters the question wizard for the freshly created workload
// and returns a screen bound to it.
func (p *Portal) StartReview(ctx context.Context) (Screen, error) {
	if err := p.s.Click(ctx, selStartReviewLink, p.cfg.ElementWait); err != nil {
		return nil, fmt.Errorf("%w: start review: %v", ErrAutomation, err)
	}
	if err := p.s.WaitFor(ctx, selQuestionCaption, browser.Visible, p.cfg.ElementWait); err != nil {
		return nil, fmt.Errorf("%w: first question: %v", ErrAutomation, err)
	}
	return &wizardScreen{s: p.s, cfg: p.cfg}, nil
}

// wizardScreen drives the live question wizard page.
type wizardScreen struct {
	s   *browser.Session
	cfg config.PortalConfig
}

func (w *wizardScreen) Caption(ctx context.Context) (string, error) {
	return w.s.Text(ctx, selQuestionCaption, w.cfg.ElementWait)
}

// DoesNotApply reads the toggle state off its class attribute, which gains a
// "checked" suffix when the toggle is on.
func (w *wizardScreen) DoesNotApply(ctx context.Context) (bool, error) {
	tctx, cancel := context.WithTimeout(ctx, w.cfg.ElementWait)
	defer cancel()
	class, ok, err := w.s.Attr(tctx, selDoesNotApplyState, "class")
	if err != nil {
		return false, err
	}
	return ok && strings.HasSuffix(class, "checked"), nil
}

func (w *wizardScreen) ToggleDoesNotApply(ctx context.Context) error {
	return w.s.Click(ctx, selDoesNotApplyState, w.cfg.ElementWait)
}

func (w *wizardScreen) EnterNotes(ctx context.Context, notes string) error {
	return w.s.Type(ctx, selAnswerNotes, notes, w.cfg.ElementWait)
}

func (w *wizardScreen) CheckboxCount(ctx context.Context) (int, error) {
	return w.s.Count(ctx, selAnswerCheckboxes, w.cfg.ElementWait)
}

func (w *wizardScreen) ClickCheckbox(ctx context.Context, i int) error {
	return w.s.ClickNth(ctx, selAnswerCheckboxes, i, w.cfg.ElementWait)
}

// IsLastQuestion probes for the enabled save-and-exit control, which only
// loses its disabled styling on the final question.
func (w *wizardScreen) IsLastQuestion(ctx context.Context) (bool, error) {
	return w.s.Exists(ctx, selLastQuestionMarker)
}

func (w *wizardScreen) Advance(ctx context.Context) error {
	return w.s.Click(ctx, selNextQuestion, w.cfg.ElementWait)
}

// WaitCaptionChange polls the caption until it differs from prev. A caption
// that never changes means the wizard is stuck, and the stall budget turns
// that into an error instead of an endless loop.
func (w *wizardScreen) WaitCaptionChange(ctx context.Context, prev string) error {
	deadline := time.Now().Add(w.cfg.CaptionStall)
	for {
		caption, err := w.s.Text(ctx, selQuestionCaption, w.cfg.ElementWait)
		if err != nil {
			return err
		}
		if caption != prev {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("caption still '%s' after %s", prev, w.cfg.CaptionStall)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.cfg.CaptionPoll):
		}
	}
}

func (w *wizardScreen) Finish(ctx context.Context) error {
	return w.s.Click(ctx, selSaveAndExit, w.cfg.ElementWait)
}
