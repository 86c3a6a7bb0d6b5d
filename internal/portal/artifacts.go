// File: internal/portal/artifacts.go
package portal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"

	"warwalk/internal/browser"
)

// RecordMilestone saves the completed review under the given milestone name.
func (p *Portal) RecordMilestone(ctx context.Context, name string) error {
	if err := p.s.Click(ctx, selRecordMilestone, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: record milestone: %v", ErrAutomation, err)
	}
	if err := p.s.WaitFor(ctx, selMilestoneModal, browser.Visible, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: milestone dialog: %v", ErrAutomation, err)
	}
	if err := p.s.Type(ctx, selMilestoneName, name, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: milestone name: %v", ErrAutomation, err)
	}
	if err := p.s.Click(ctx, selMilestoneRecordButton, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: milestone save: %v", ErrAutomation, err)
	}
	if err := p.s.WaitFor(ctx, selMilestoneModal, browser.Hidden, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: milestone dialog did not close: %v", ErrAutomation, err)
	}
	p.logger.Info("Milestone recorded.", zap.String("name", name))
	return nil
}

// GeneratePDF triggers report generation and waits for the portal to finish.
// The control disables itself while the report is being built; readiness is
// it becoming clickable again, bounded by the generation budget.
func (p *Portal) GeneratePDF(ctx context.Context) error {
	if err := p.s.Click(ctx, selGeneratePDFButton, p.cfg.ElementWait); err != nil {
		return fmt.Errorf("%w: generate PDF: %v", ErrAutomation, err)
	}
	probe := func(ctx context.Context) (bool, error) {
		pctx, cancel := context.WithTimeout(ctx, p.cfg.ElementWait)
		defer cancel()
		enabled, err := p.s.Enabled(pctx, selGeneratePDFSubmit)
		if err != nil {
			// The control briefly detaches while the page refreshes; count
			// that as not ready rather than failing the run.
			if pctx.Err() != nil {
				return false, nil
			}
			return false, err
		}
		return enabled, nil
	}
	if err := waitReady(ctx, probe, p.cfg.GeneratePoll, p.cfg.GenerateBudget); err != nil {
		return fmt.Errorf("%w: PDF generation: %v", ErrAutomation, err)
	}
	p.logger.Info("PDF generated.")
	return nil
}

// waitReady polls probe until it reports true, at most budget long.
func waitReady(ctx context.Context, probe func(context.Context) (bool, error), interval, budget time.Duration) error {
	deadline := time.Now().Add(budget)
	for {
		ready, err := probe(ctx)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("not ready after %s", budget)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// CollectPDF waits for the downloaded report to land in the browser's
// download directory and moves it next to the other run artifacts. A missing
// download fails the run; a failed move does not, the file is simply left
// where the browser put it.
func (p *Portal) CollectPDF(ctx context.Context, workloadName, outDir string) (string, error) {
	downloads, err := downloadDir(p.cfg.DownloadDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAutomation, err)
	}
	src := filepath.Join(downloads, workloadName+".pdf")

	probe := func(context.Context) (bool, error) {
		_, err := os.Stat(src)
		if err == nil {
			return true, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := waitReady(ctx, probe, time.Second, p.cfg.DownloadWait); err != nil {
		return "", fmt.Errorf("%w: report '%s' never appeared: %v", ErrAutomation, src, err)
	}

	dst := filepath.Join(outDir, workloadName+".pdf")
	if err := moveFile(src, dst); err != nil {
		p.logger.Warn("Could not move the report, leaving it in the download directory.",
			zap.String("path", src), zap.Error(err))
		return src, nil
	}
	p.logger.Info("Report collected.", zap.String("path", dst))
	return dst, nil
}

// SaveARN navigates to the milestone's properties, reads the workload ARN
// and writes it to a sidecar file next to the report.
func (p *Portal) SaveARN(ctx context.Context, workloadName, milestoneName, outDir string) (string, error) {
	if err := p.s.Click(ctx, selMilestonesLink, p.cfg.ElementWait); err != nil {
		return "", fmt.Errorf("%w: milestones tab: %v", ErrAutomation, err)
	}
	if err := p.s.Click(ctx, partialLinkSelector(milestoneName), p.cfg.ElementWait); err != nil {
		return "", fmt.Errorf("%w: milestone '%s': %v", ErrAutomation, milestoneName, err)
	}
	if err := p.s.Click(ctx, selPropertiesLink, p.cfg.ElementWait); err != nil {
		return "", fmt.Errorf("%w: properties tab: %v", ErrAutomation, err)
	}
	arn, err := p.s.Text(ctx, selMilestoneARN, p.cfg.ElementWait)
	if err != nil {
		return "", fmt.Errorf("%w: workload ARN: %v", ErrAutomation, err)
	}
	arn = strings.TrimSpace(arn)

	path := filepath.Join(outDir, "ARN-"+workloadName+".txt")
	if err := os.WriteFile(path, []byte(arn+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("%w: writing '%s': %v", ErrAutomation, path, err)
	}
	p.logger.Info("Workload ARN saved.", zap.String("arn", arn), zap.String("path", path))
	return arn, nil
}

// downloadDir resolves the browser's download directory, defaulting to the
// user's Downloads folder when none is configured.
func downloadDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// moveFile renames src to dst, falling back to copy-and-remove across
// filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
