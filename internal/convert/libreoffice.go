// Package convert turns office documents into PDFs using a headless
// LibreOffice invocation, so the rest of the pipeline only ever sees PDFs.
package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds one LibreOffice conversion.
const DefaultTimeout = 180 * time.Second

// Available reports whether LibreOffice is installed.
func Available() bool {
	_, err := exec.LookPath("libreoffice")
	return err == nil
}

// ToPDF converts inputPath into a PDF and returns the path of the converted
// file, which lives in its own temp directory; the caller removes it.
func ToPDF(ctx context.Context, inputPath string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	outDir, err := os.MkdirTemp("", "pressclip-conv-*")
	if err != nil {
		return "", err
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(cctx, "libreoffice",
		"--headless",
		"--norestore",
		"--convert-to", "pdf",
		"--outdir", outDir,
		inputPath,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		os.RemoveAll(outDir)
		return "", fmt.Errorf("libreoffice conversion failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	// LibreOffice names the output after the input file.
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		os.RemoveAll(outDir)
		return "", fmt.Errorf("conversion produced no output: %w", err)
	}

	log.Info().
		Str("input", inputPath).
		Str("pdf", pdfPath).
		Dur("duration", time.Since(start)).
		Msg("converted input to pdf")
	return pdfPath, nil
}
