package cli

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/local/pressclip/internal/ai"
	"github.com/local/pressclip/internal/assemble"
	"github.com/local/pressclip/internal/classify"
	cfgpkg "github.com/local/pressclip/internal/config"
	"github.com/local/pressclip/internal/convert"
	"github.com/local/pressclip/internal/extract"
	"github.com/local/pressclip/internal/fetch"
	"github.com/local/pressclip/internal/filetype"
	"github.com/local/pressclip/internal/metrics"
	"github.com/local/pressclip/internal/preflight"
	"github.com/local/pressclip/internal/selector"
)

var (
	runInput       string
	runOutput      string
	runSimple      bool
	runMinTextLen  int
	runMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Classify pages and write the consolidated PDF",
	Long: `Run the full pipeline on one document: extract text per page, classify
each page remotely (with keyword fallback unless --simple), and write a new
PDF containing the selected pages in original order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "source PDF (path, file://, http(s):// or s3://)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "consolidated PDF destination (path or s3://)")
	runCmd.Flags().BoolVar(&runSimple, "simple", false, "simple variant: no keyword fallback, editorial pages only")
	runCmd.Flags().IntVar(&runMinTextLen, "min-text-len", 0, "override the sparse-page text threshold")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address for the duration of the run")
	_ = runCmd.MarkFlagRequired("input")
	_ = runCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command) error {
	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()

	if runSimple {
		cfg.Pipeline.FallbackEnabled = false
		cfg.Pipeline.IncludeOpinion = false
	}
	if runMinTextLen > 0 {
		cfg.Pipeline.MinTextLen = runMinTextLen
	}

	// Credentials are validated before any page is touched.
	primary, err := ai.ForEngine(cfg.Classify.PrimaryEngine)
	if err != nil {
		return &cfgpkg.ConfigurationError{Msg: err.Error()}
	}
	var secondary ai.Client
	if cfg.Classify.SecondaryEngine != "" {
		secondary, err = ai.ForEngine(cfg.Classify.SecondaryEngine)
		if err != nil {
			logger.Warn().Err(err).Str("engine", cfg.Classify.SecondaryEngine).Msg("secondary engine unavailable, continuing without failover")
			secondary = nil
		}
	}

	if !fetch.IsS3(runOutput) {
		if dir := filepath.Dir(runOutput); dir != "" {
			if st, err := os.Stat(dir); err != nil || !st.IsDir() {
				return &cfgpkg.ConfigurationError{Msg: fmt.Sprintf("output directory does not exist: %s", dir)}
			}
		}
	}

	metrics.Init()
	if runMetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			if err := http.ListenAndServe(runMetricsAddr, mux); err != nil {
				logger.Warn().Err(err).Msg("metrics endpoint stopped")
			}
		}()
	}

	// The run may be aborted between pages; no partial output is written.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logger.Info().Str("input", runInput).Str("output", runOutput).Msg("starting editorial extraction run")

	localIn, tmpIn, err := fetch.EnsureLocal(ctx, runInput)
	if err != nil {
		return fmt.Errorf("resolve input %s: %w", runInput, err)
	}
	if tmpIn != "" {
		defer os.Remove(tmpIn)
	}

	info, err := filetype.Detect(localIn)
	if err != nil {
		return fmt.Errorf("inspect input: %w", err)
	}
	if !info.Supported {
		return fmt.Errorf("unsupported input: %s", info.Description)
	}
	pdfPath := localIn
	if info.NeedsConversion {
		if !convert.Available() {
			return fmt.Errorf("input is a %s but LibreOffice is not installed", info.Description)
		}
		converted, err := convert.ToPDF(ctx, localIn, convert.DefaultTimeout)
		if err != nil {
			return err
		}
		defer os.RemoveAll(filepath.Dir(converted))
		pdfPath = converted
	}

	doc, err := extract.Open(pdfPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	if ok, diag := preflight.HasTextLayer(doc, cfg.Pipeline.PreflightThreshold); !ok {
		logger.Warn().
			Int("sampled_chars", diag.CharsInSample).
			Int("threshold", diag.Threshold).
			Msg("document appears to have no text layer; classification will rely on sparse-page handling")
	}

	breaker := classify.NewBreaker(cfg.Classify.BreakerBase, cfg.Classify.BreakerMax)
	cls := classify.New(classify.Options{
		MinTextLen:      cfg.Pipeline.MinTextLen,
		FallbackEnabled: cfg.Pipeline.FallbackEnabled,
		MaxRetries:      cfg.Classify.MaxRetries,
		RequestTimeout:  cfg.Classify.RequestTimeout,
		MaxPromptChars:  cfg.Classify.MaxPromptChars,
	},
		primary, cfg.Classify.ModelFor(cfg.Classify.PrimaryEngine),
		secondary, cfg.Classify.ModelFor(cfg.Classify.SecondaryEngine),
		breaker,
	)

	rep := &selector.ConsoleReporter{Out: cmd.OutOrStdout(), OnlyIncluded: runSimple}
	sel, err := selector.Select(ctx, doc, cls, rep, selector.Options{IncludeOpinion: cfg.Pipeline.IncludeOpinion})
	if err != nil {
		return err
	}

	outPath := runOutput
	if fetch.IsS3(runOutput) {
		f, err := os.CreateTemp("", "pressclip-out-*.pdf")
		if err != nil {
			return err
		}
		f.Close()
		os.Remove(f.Name())
		outPath = f.Name()
		defer os.Remove(outPath)
	}

	if err := assemble.Assemble(pdfPath, outPath, sel.Pages, sel.Total); err != nil {
		return err
	}
	if fetch.IsS3(runOutput) {
		if err := fetch.Upload(ctx, runOutput, outPath); err != nil {
			return err
		}
	}

	logger.Info().
		Int("selected", len(sel.Pages)).
		Int("total", sel.Total).
		Dur("duration", time.Since(start)).
		Msg("run completed")
	fmt.Fprintf(cmd.OutOrStdout(), "SUCCESS: extracted %d of %d pages into %s\n", len(sel.Pages), sel.Total, runOutput)
	return nil
}
