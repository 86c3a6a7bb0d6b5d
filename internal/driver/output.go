// File: internal/driver/output.go
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"warwalk/internal/browser"
	"warwalk/internal/portal"
	"warwalk/internal/review"
)

// resolveOutputDir decides where the run's artifacts land. Precedence is
// command-line flag, then the input file's outDir, then the working
// directory; a per-customer subdirectory is appended underneath. An existing
// report for the same workload is only overwritten with operator consent.
func (d *Driver) resolveOutputDir(rev *review.Review) (string, error) {
	base := d.cfg.Run.OutputDir
	if base == "" {
		base = rev.OutDir
	}
	if base == "" {
		base = "."
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("%w: resolving output directory: %v", browser.ErrSetup, err)
	}

	customer, err := d.prompt.Line("Customer Name")
	if err != nil {
		return "", fmt.Errorf("%w: %v", browser.ErrSetup, err)
	}
	outDir := abs
	if customer != "" {
		outDir = filepath.Join(abs, customer)
	}

	pdfPath := filepath.Join(outDir, rev.Workload.Name+".pdf")
	if _, err := os.Stat(pdfPath); err == nil {
		overwrite, err := d.prompt.Confirm(fmt.Sprintf("File %q exists.\nDo you want to overwrite?", pdfPath))
		if err != nil {
			return "", fmt.Errorf("%w: %v", browser.ErrSetup, err)
		}
		if !overwrite {
			return "", fmt.Errorf("%w: existing report kept", portal.ErrDeclined)
		}
		if err := os.Remove(pdfPath); err != nil {
			return "", fmt.Errorf("%w: removing %q: %v", browser.ErrSetup, pdfPath, err)
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %q: %v", browser.ErrSetup, outDir, err)
	}
	d.logger.Info("Output directory ready.", zap.String("path", outDir))
	return outDir, nil
}
