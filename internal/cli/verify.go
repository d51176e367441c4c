package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/citeguard/citeguard/internal/library"
	"github.com/citeguard/citeguard/internal/llm"
	"github.com/citeguard/citeguard/internal/model"
	"github.com/citeguard/citeguard/internal/report"
	"github.com/citeguard/citeguard/internal/verify"
)

var (
	outJSON      string
	storeURL     string
	libraryPath  string
	pairTimeout  time.Duration
	storeTimeout time.Duration
	noCache      bool
	noFooter     bool
	llmEnabled   bool
	llmModel     string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <analysis.json>",
	Short: "Verify a document's citations against library sources",
	Long: `Verify reads the citations and bibliography extracted from one document
(the analysis pipeline's JSON output), pairs each numbered citation with
its bibliography entry, and checks the citation's surrounding prose
against the stored source text.

Source content comes from the remote content store (--store-url) or, when
none is configured, from the local library database.

Example:
  citeguard verify analysis.json
  citeguard verify analysis.json --store-url http://localhost:8000 --json report.json
  citeguard verify analysis.json --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	verifyCmd.Flags().StringVar(&storeURL, "store-url", "", "content store base URL (remote library)")
	verifyCmd.Flags().StringVar(&libraryPath, "library", "", "local library database path")
	verifyCmd.Flags().DurationVar(&pairTimeout, "pair-timeout", verify.DefaultPairTimeout, "per-citation verification timeout")
	verifyCmd.Flags().DurationVar(&storeTimeout, "store-timeout", 30*time.Second, "content store request timeout")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the run-scoped source content memo")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable the summary footer")
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM summary of the report")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	analysis, err := loadAnalysis(args[0])
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.Store.BaseURL = storeURL
	cfg.Store.Timeout = storeTimeout
	cfg.Library.Path = libraryPath
	cfg.Verify.PairTimeout = pairTimeout
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Cache.Enabled {
		store = library.NewMemo(store, cfg.Cache.TTL)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Citations: %d, bibliography entries: %d\n",
			len(analysis.Citations), len(analysis.Bibliography))
		if sources, err := store.ListSources(cmd.Context()); err == nil {
			fmt.Fprintf(os.Stderr, "Library sources available: %d\n", len(sources))
		}
	}

	runner := verify.NewRunner(store,
		verify.WithPairTimeout(cfg.Verify.PairTimeout),
		verify.WithVerbose(verbose),
		verify.WithProgress(func(percent int, partial []model.VerificationResult) {
			fmt.Fprintf(os.Stderr, "\rVerifying... %3d%% (%d pairs)", percent, len(partial))
			if percent == 100 {
				fmt.Fprintln(os.Stderr)
			}
		}),
	)

	runReport, err := runner.VerifyAll(cmd.Context(), analysis.Citations, analysis.Bibliography)
	if err != nil {
		if errors.Is(err, verify.ErrNoPairs) {
			return fmt.Errorf("nothing to verify: no citation could be matched to a bibliography entry")
		}
		return fmt.Errorf("verification failed: %w", err)
	}

	// Runs after verification so the summary can never affect verdicts.
	if llmEnabled {
		summarizer, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summarizer unavailable: %v\n", err)
		} else if summarizer != nil {
			summary, err := summarizer.Summarize(cmd.Context(), runReport)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
			} else {
				runReport.LLM = summary
			}
		}
	}

	renderer := report.NewRenderer(cfg.Output.IncludeFooter)
	if outJSON != "" {
		if err := renderer.RenderJSON(runReport, outJSON); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	renderer.RenderSummary(runReport)

	return nil
}

// loadAnalysis reads the upstream pipeline's JSON output.
func loadAnalysis(path string) (*model.Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analysis file: %w", err)
	}
	var analysis model.Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis file: %w", err)
	}
	return &analysis, nil
}

// openStore picks the content store backend: remote when a base URL is
// configured, local SQLite otherwise.
func openStore(cfg *model.Config) (library.ContentStore, func(), error) {
	if cfg.Store.BaseURL != "" {
		store, err := library.NewHTTPStore(cfg.Store)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	path := cfg.Library.Path
	if path == "" {
		path = defaultLibraryPath()
	}
	store, err := library.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}
