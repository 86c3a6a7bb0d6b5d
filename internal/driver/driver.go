// File: internal/driver/driver.go

// Package driver sequences a full replay run: load and validate the input
// file, resolve the output destination, collect credentials, then walk the
// portal stages in order. Failures surface as wrapped sentinel errors; the
// command layer maps them to process exit codes in one place.
package driver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"warwalk/internal/browser"
	"warwalk/internal/config"
	"warwalk/internal/portal"
	"warwalk/internal/prompt"
	"warwalk/internal/review"
)

// consoleRegion is the region every review runs in; the service is global
// but the console session needs a concrete one.
const consoleRegion = "N. Virginia"

// teardownBudget bounds the best-effort logout and browser shutdown that
// run on every exit path.
const teardownBudget = 30 * time.Second

// Driver owns one replay run end to end.
type Driver struct {
	cfg    *config.Config
	prompt prompt.Prompter
	logger *zap.Logger
}

// New builds a driver around the resolved configuration.
func New(cfg *config.Config, pr prompt.Prompter, logger *zap.Logger) *Driver {
	return &Driver{cfg: cfg, prompt: pr, logger: logger.Named("driver")}
}

// Run executes the whole pipeline. Interactive setup happens before the
// browser launches so a declined prompt never leaves a process behind.
func (d *Driver) Run(ctx context.Context) error {
	rev, err := review.Load(d.cfg.Run.InputFile)
	if err != nil {
		return err
	}
	d.logger.Info("Input file loaded.",
		zap.String("path", d.cfg.Run.InputFile),
		zap.Int("questions", len(rev.Questions)))

	outDir, err := d.resolveOutputDir(rev)
	if err != nil {
		return err
	}

	creds, err := d.collectCredentials()
	if err != nil {
		return err
	}

	started := time.Now()
	d.logger.Info("Run started.", zap.Time("at", started))

	session, err := browser.Open(ctx, d.cfg.Browser, d.logger)
	if err != nil {
		return err
	}
	p := portal.New(session, d.cfg.Portal, d.prompt, d.logger)

	// Teardown is unconditional: whatever state the run died in, try to
	// sign the console session out before killing the browser.
	defer func() {
		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), teardownBudget)
		defer cancel()
		p.Logout(tctx)
		session.Close()
	}()

	if err := d.replay(ctx, p, session.Pacing(), rev, creds, outDir); err != nil {
		return err
	}

	d.logger.Info("Run finished.", zap.Duration("elapsed", time.Since(started).Round(time.Second)))
	return nil
}

// replay walks the five portal stages in order.
func (d *Driver) replay(ctx context.Context, p *portal.Portal, pacing *browser.Pacing, rev *review.Review, creds credentials, outDir string) error {
	if err := p.SignIn(ctx, rev.SignInURL, creds.username, creds.password); err != nil {
		return err
	}
	if err := p.SelectRegion(ctx, consoleRegion); err != nil {
		return err
	}
	if err := p.OpenService(ctx); err != nil {
		return err
	}

	if err := p.CreateWorkload(ctx, rev.Workload); err != nil {
		return err
	}

	screen, err := p.StartReview(ctx)
	if err != nil {
		return err
	}
	walker := portal.NewWalker(screen, d.prompt, pacing, d.logger)
	if err := walker.Walk(ctx, rev.Questions); err != nil {
		return err
	}

	if err := p.RecordMilestone(ctx, rev.Workload.Milestone); err != nil {
		return err
	}
	if err := p.GeneratePDF(ctx); err != nil {
		return err
	}
	pdfPath, err := p.CollectPDF(ctx, rev.Workload.Name, outDir)
	if err != nil {
		return err
	}
	arn, err := p.SaveARN(ctx, rev.Workload.Name, rev.Workload.Milestone, outDir)
	if err != nil {
		return err
	}

	d.logger.Info("Artifacts captured.",
		zap.String("report", pdfPath),
		zap.String("arn", arn))
	return nil
}
