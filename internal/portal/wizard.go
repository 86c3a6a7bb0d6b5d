// File: internal/portal/wizard.go
package portal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"warwalk/internal/browser"
	"warwalk/internal/prompt"
	"warwalk/internal/review"
)

// Screen is the question wizard as seen from the replay loop: one question
// rendered at a time, advanced strictly forward.
type Screen interface {
	// Caption returns the visible title of the current question.
	Caption(ctx context.Context) (string, error)
	// DoesNotApply reports the state of the question's applicability toggle.
	DoesNotApply(ctx context.Context) (bool, error)
	// ToggleDoesNotApply flips the applicability toggle.
	ToggleDoesNotApply(ctx context.Context) error
	// EnterNotes fills the question's notes field.
	EnterNotes(ctx context.Context, notes string) error
	// CheckboxCount returns how many answer checkboxes the question offers.
	CheckboxCount(ctx context.Context) (int, error)
	// ClickCheckbox clicks the i-th (0-based) answer checkbox.
	ClickCheckbox(ctx context.Context, i int) error
	// IsLastQuestion reports whether the wizard is on its final question.
	IsLastQuestion(ctx context.Context) (bool, error)
	// Advance clicks through to the next question.
	Advance(ctx context.Context) error
	// WaitCaptionChange blocks until the caption differs from prev, bounded
	// by the configured stall budget.
	WaitCaptionChange(ctx context.Context, prev string) error
	// Finish saves the review and leaves the wizard.
	Finish(ctx context.Context) error
}

// Walker replays a question list against a wizard screen.
type Walker struct {
	screen Screen
	prompt prompt.Prompter
	pacing *browser.Pacing
	logger *zap.Logger
	ignore bool // operator chose to ignore answer-count mismatches
}

// NewWalker builds a replay loop over the given screen.
func NewWalker(screen Screen, prompter prompt.Prompter, pacing *browser.Pacing, logger *zap.Logger) *Walker {
	return &Walker{screen: screen, prompt: prompter, pacing: pacing, logger: logger}
}

// Walk answers every question in order. The list length must agree with the
// wizard's own question count: hitting the final screen with questions left
// over, or running out of questions before the final screen, aborts the run.
func (w *Walker) Walk(ctx context.Context, questions []review.Question) error {
	for i, q := range questions {
		caption, err := w.screen.Caption(ctx)
		if err != nil {
			return fmt.Errorf("%w: question caption: %v", ErrAutomation, err)
		}
		w.logger.Info("Answering question.",
			zap.Int("number", i+1),
			zap.String("caption", caption),
			zap.String("section", q.Section))

		if err := w.answer(ctx, q, caption); err != nil {
			return err
		}

		last, err := w.screen.IsLastQuestion(ctx)
		if err != nil {
			return fmt.Errorf("%w: final question probe: %v", ErrAutomation, err)
		}
		if last != (i == len(questions)-1) {
			if last {
				return fmt.Errorf("%w: wizard ended at question %d but the input file has %d questions",
					ErrAutomation, i+1, len(questions))
			}
			return fmt.Errorf("%w: input file exhausted after %d questions but the wizard has more",
				ErrAutomation, len(questions))
		}
		if last {
			break
		}

		if err := w.screen.Advance(ctx); err != nil {
			return fmt.Errorf("%w: advance from question %d: %v", ErrAutomation, i+1, err)
		}
		if err := w.screen.WaitCaptionChange(ctx, caption); err != nil {
			return fmt.Errorf("%w: question %d did not advance: %v", ErrAutomation, i+2, err)
		}
		if w.pacing != nil {
			if err := w.pacing.Jitter(ctx); err != nil {
				return err
			}
		}
	}

	if err := w.screen.Finish(ctx); err != nil {
		return fmt.Errorf("%w: save and exit: %v", ErrAutomation, err)
	}
	w.logger.Info("Review complete.", zap.Int("questions", len(questions)))
	return nil
}

// answer applies one configured question to the current screen.
func (w *Walker) answer(ctx context.Context, q review.Question, caption string) error {
	applied, err := w.screen.DoesNotApply(ctx)
	if err != nil {
		return fmt.Errorf("%w: applicability toggle: %v", ErrAutomation, err)
	}
	if applied != q.DoesNotApply {
		if err := w.screen.ToggleDoesNotApply(ctx); err != nil {
			return fmt.Errorf("%w: applicability toggle: %v", ErrAutomation, err)
		}
	}

	if q.Notes != "" {
		if err := w.screen.EnterNotes(ctx, q.Notes); err != nil {
			return fmt.Errorf("%w: notes: %v", ErrAutomation, err)
		}
	}

	// Marked not applicable: the answer list is ignored, nothing is clicked.
	if q.DoesNotApply {
		return nil
	}

	indices := q.AnswerIndices()
	if len(indices) == 0 {
		return nil
	}

	count, err := w.screen.CheckboxCount(ctx)
	if err != nil {
		return fmt.Errorf("%w: answer checkboxes: %v", ErrAutomation, err)
	}
	if indices[len(indices)-1] > count {
		if err := w.confirmMismatch(caption, indices[len(indices)-1], count); err != nil {
			return err
		}
	}

	for _, n := range indices {
		if n > count {
			continue
		}
		if err := w.screen.ClickCheckbox(ctx, n-1); err != nil {
			return fmt.Errorf("%w: answer %d: %v", ErrAutomation, n, err)
		}
	}
	return nil
}

// confirmMismatch asks the operator once per run whether answer indices that
// exceed the rendered checkbox count should be ignored.
func (w *Walker) confirmMismatch(caption string, wanted, got int) error {
	if w.ignore {
		return nil
	}
	w.logger.Warn("Answer index exceeds the number of choices.",
		zap.String("caption", caption),
		zap.Int("index", wanted),
		zap.Int("choices", got))
	cont, err := w.prompt.Confirm(fmt.Sprintf(
		"Question '%s' lists answer %d but only offers %d choices.\nContinue and ignore all such mismatches?",
		caption, wanted, got))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAutomation, err)
	}
	if !cont {
		return fmt.Errorf("%w: answer %d out of range for question '%s'", review.ErrInvalidInput, wanted, caption)
	}
	w.ignore = true
	return nil
}
