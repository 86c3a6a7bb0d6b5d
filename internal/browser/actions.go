// internal/browser/actions.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Condition is the element state a bounded wait resolves on. The four
// variants cover every wait the portal flow needs; WaitFor is the single
// primitive behind all of them.
type Condition int

const (
	// Present resolves once the element exists in the DOM.
	Present Condition = iota
	// Visible resolves once the element is rendered.
	Visible
	// Clickable resolves once the element is visible and enabled.
	Clickable
	// Hidden resolves once the element is absent or not rendered.
	Hidden
)

func (c Condition) String() string {
	switch c {
	case Present:
		return "present"
	case Visible:
		return "visible"
	case Clickable:
		return "clickable"
	case Hidden:
		return "hidden"
	}
	return "unknown"
}

// WaitFor blocks until the element matching selector reaches the given
// condition, or the timeout elapses. Selectors may be CSS or XPath.
func (s *Session) WaitFor(ctx context.Context, selector string, cond Condition, timeout time.Duration) error {
	var action chromedp.Action
	switch cond {
	case Present:
		action = chromedp.WaitReady(selector, chromedp.BySearch)
	case Visible:
		action = chromedp.WaitVisible(selector, chromedp.BySearch)
	case Clickable:
		action = chromedp.Tasks{
			chromedp.WaitVisible(selector, chromedp.BySearch),
			chromedp.WaitEnabled(selector, chromedp.BySearch),
		}
	case Hidden:
		action = chromedp.WaitNotVisible(selector, chromedp.BySearch)
	default:
		return fmt.Errorf("unknown wait condition %d", cond)
	}

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Run(waitCtx, action); err != nil {
		s.logger.Debug("Element wait failed.",
			zap.String("selector", selector),
			zap.Stringer("condition", cond),
			zap.Error(err))
		return fmt.Errorf("%w: '%s' did not become %s within %s", ErrElementWait, selector, cond, timeout)
	}
	return nil
}

// Navigate loads the given URL.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating.", zap.String("url", url))
	if err := s.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigation to '%s' failed: %w", url, err)
	}
	return nil
}

// Title returns the current page title.
func (s *Session) Title(ctx context.Context) (string, error) {
	var title string
	if err := s.Run(ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("failed to read page title: %w", err)
	}
	return title, nil
}

// Click waits for the element to become clickable, then clicks it.
func (s *Session) Click(ctx context.Context, selector string, timeout time.Duration) error {
	if err := s.WaitFor(ctx, selector, Clickable, timeout); err != nil {
		return err
	}
	if err := s.pacing.Jitter(ctx); err != nil {
		return err
	}
	if err := s.Run(ctx, chromedp.Click(selector, chromedp.BySearch)); err != nil {
		return fmt.Errorf("click failed for '%s': %w", selector, err)
	}
	return nil
}

// Type waits for the element, then sends text. With humanized pacing enabled
// the text goes in character by character with a randomized delay between
// keystrokes; otherwise it is sent in one burst.
func (s *Session) Type(ctx context.Context, selector, text string, timeout time.Duration) error {
	if err := s.WaitFor(ctx, selector, Clickable, timeout); err != nil {
		return err
	}

	if !s.pacing.Enabled() {
		if err := s.Run(ctx, chromedp.SendKeys(selector, text, chromedp.BySearch)); err != nil {
			return fmt.Errorf("type failed for '%s': %w", selector, err)
		}
		return nil
	}

	for _, r := range text {
		if err := s.Run(ctx, chromedp.SendKeys(selector, string(r), chromedp.BySearch)); err != nil {
			return fmt.Errorf("type failed for '%s': %w", selector, err)
		}
		if err := s.pacing.Jitter(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Text returns the visible text of the first element matching selector,
// waiting up to timeout for it to render.
func (s *Session) Text(ctx context.Context, selector string, timeout time.Duration) (string, error) {
	if err := s.WaitFor(ctx, selector, Visible, timeout); err != nil {
		return "", err
	}
	var text string
	if err := s.Run(ctx, chromedp.Text(selector, &text, chromedp.BySearch)); err != nil {
		return "", fmt.Errorf("failed to read text of '%s': %w", selector, err)
	}
	return text, nil
}

// Attr returns the value of the named attribute on the first matching
// element, and whether the attribute is set at all.
func (s *Session) Attr(ctx context.Context, selector, name string) (string, bool, error) {
	var value string
	var ok bool
	if err := s.Run(ctx, chromedp.AttributeValue(selector, name, &value, &ok, chromedp.BySearch)); err != nil {
		return "", false, fmt.Errorf("failed to read attribute '%s' of '%s': %w", name, selector, err)
	}
	return value, ok, nil
}

// Enabled reports whether the first matching element lacks the disabled
// attribute.
func (s *Session) Enabled(ctx context.Context, selector string) (bool, error) {
	_, disabled, err := s.Attr(ctx, selector, "disabled")
	if err != nil {
		return false, err
	}
	return !disabled, nil
}

// Exists reports whether any element currently matches selector. Unlike
// WaitFor it returns immediately.
func (s *Session) Exists(ctx context.Context, selector string) (bool, error) {
	var nodes []*cdp.Node
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	err := s.Run(probeCtx, chromedp.Nodes(selector, &nodes, chromedp.BySearch, chromedp.AtLeast(0)))
	if err != nil {
		// A probe timing out means nothing matched.
		if probeCtx.Err() != nil {
			return false, nil
		}
		return false, fmt.Errorf("existence probe failed for '%s': %w", selector, err)
	}
	return len(nodes) > 0, nil
}

// Count returns the number of elements matching selector after waiting for
// at least one to be present.
func (s *Session) Count(ctx context.Context, selector string, timeout time.Duration) (int, error) {
	if err := s.WaitFor(ctx, selector, Present, timeout); err != nil {
		return 0, err
	}
	var nodes []*cdp.Node
	if err := s.Run(ctx, chromedp.Nodes(selector, &nodes, chromedp.BySearch, chromedp.AtLeast(0))); err != nil {
		return 0, fmt.Errorf("failed to enumerate '%s': %w", selector, err)
	}
	return len(nodes), nil
}

// ClickNth clicks the i-th (0-based) element matching selector.
func (s *Session) ClickNth(ctx context.Context, selector string, i int, timeout time.Duration) error {
	if err := s.WaitFor(ctx, selector, Present, timeout); err != nil {
		return err
	}
	var nodes []*cdp.Node
	if err := s.Run(ctx, chromedp.Nodes(selector, &nodes, chromedp.BySearch, chromedp.AtLeast(0))); err != nil {
		return fmt.Errorf("failed to enumerate '%s': %w", selector, err)
	}
	if i < 0 || i >= len(nodes) {
		return fmt.Errorf("%w: '%s' has %d matches, wanted index %d", ErrElementWait, selector, len(nodes), i)
	}
	if err := s.pacing.Jitter(ctx); err != nil {
		return err
	}
	if err := s.Run(ctx, chromedp.MouseClickNode(nodes[i])); err != nil {
		return fmt.Errorf("click failed for '%s'[%d]: %w", selector, i, err)
	}
	return nil
}
