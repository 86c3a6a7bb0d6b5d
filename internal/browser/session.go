// internal/browser/session.go

// Package browser wraps chromedp with the small set of page primitives the
// replay driver needs: navigate, wait for an element state, click, type,
// read text. The browser process and tab context are owned by a single
// Session for the duration of one run.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"warwalk/internal/config"
)

var (
	// ErrBrowserNotFound indicates no usable Chrome/Chromium binary exists on
	// the system. Maps to its own exit code so operators can tell an install
	// problem from an automation failure.
	ErrBrowserNotFound = errors.New("chrome browser binary not found")
	// ErrDependency indicates the browser started but its DevTools endpoint
	// never became reachable, so no automation is possible.
	ErrDependency = errors.New("browser automation interface unavailable")
	// ErrSetup covers environment problems before automation begins: the
	// browser failing to launch, an unusable output destination, a missing
	// input file.
	ErrSetup = errors.New("setup failed")
	// ErrElementWait indicates an element did not reach the required state
	// within its bounded wait. Any such timeout is terminal for the run.
	ErrElementWait = errors.New("element not found or in inaccessible state")
)

// chromeCandidates are the binary names probed when no explicit exec path is
// configured. Mirrors the lookup order used by the chromedp allocator.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
	"headless_shell",
}

// Session represents the single browser session owned by a run.
type Session struct {
	id     string
	ctx    context.Context
	logger *zap.Logger
	pacing *Pacing

	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
}

// Open launches the browser and attaches a new tab context. The caller must
// call Close on every path, success or failure.
func Open(parent context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	execPath := cfg.ExecPath
	if execPath == "" {
		found, err := findChrome()
		if err != nil {
			return nil, err
		}
		execPath = found
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(execPath),
		chromedp.Flag("start-maximized", true),
	)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	for _, arg := range cfg.Args {
		arg = strings.TrimPrefix(arg, "--")
		if key, value, ok := strings.Cut(arg, "="); ok {
			opts = append(opts, chromedp.Flag(key, value))
		} else {
			opts = append(opts, chromedp.Flag(arg, true))
		}
	}

	sessionID := uuid.New().String()
	log := logger.Named("browser").With(zap.String("session_id", sessionID))

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		id:          sessionID,
		ctx:         ctx,
		logger:      log,
		pacing:      NewPacing(cfg.Humanize, cfg.HumanizeMaxDelay),
		allocCancel: allocCancel,
		ctxCancel:   ctxCancel,
	}

	// Starting the browser eagerly surfaces launch failures here instead of
	// on the first navigation.
	if err := chromedp.Run(ctx); err != nil {
		s.Close()
		if errors.Is(err, exec.ErrNotFound) || strings.Contains(err.Error(), "executable file not found") {
			return nil, fmt.Errorf("%w: %v", ErrBrowserNotFound, err)
		}
		if strings.Contains(err.Error(), "websocket url timeout") {
			return nil, fmt.Errorf("%w: %v", ErrDependency, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSetup, err)
	}

	log.Info("Browser session opened.",
		zap.String("exec_path", execPath),
		zap.Bool("headless", cfg.Headless))
	return s, nil
}

// findChrome probes PATH for a known Chrome/Chromium binary name.
func findChrome() (string, error) {
	for _, name := range chromeCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s; install Chrome or set browser.exec_path",
		ErrBrowserNotFound, strings.Join(chromeCandidates, ", "))
}

// ID returns the session identifier attached to all of its log lines.
func (s *Session) ID() string {
	return s.id
}

// Pacing returns the humanized-delay source for this session.
func (s *Session) Pacing() *Pacing {
	return s.pacing
}

// Close terminates the tab and the browser process. Safe to call more than once.
func (s *Session) Close() {
	if s.ctxCancel != nil {
		s.logger.Debug("Closing browser session.")
		s.ctxCancel()
		s.ctxCancel = nil
	}
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
	}
}

// Run executes chromedp actions, ensuring they respect both the session
// lifetime (s.ctx) and the incoming request context (ctx).
func (s *Session) Run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := CombineContext(s.ctx, ctx)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// CombineContext creates a context that is canceled when either parent is
// canceled, so actions respect both the session lifecycle and per-operation
// deadlines.
func CombineContext(parentCtx, secondaryCtx context.Context) (context.Context, context.CancelFunc) {
	combinedCtx, cancel := context.WithCancel(parentCtx)

	go func() {
		select {
		case <-secondaryCtx.Done():
			cancel()
		case <-combinedCtx.Done():
		}
	}()

	return combinedCtx, cancel
}
