// Package verify parses the governance verifier's flags and runs the checks.
package verify

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/concordhq/concord/internal/platform/config"
	"github.com/concordhq/concord/internal/platform/otel"
	"github.com/concordhq/concord/internal/services/governance/storage/sqlite"
	govverify "github.com/concordhq/concord/internal/services/governance/verify"
)

// Config holds verifier command configuration.
type Config struct {
	DBPath      string `env:"CONCORD_DB_PATH" envDefault:"concord.db"`
	WorkspaceID string `env:"CONCORD_WORKSPACE_ID"`
	Category    string
	Severity    string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the governance database")
	fs.StringVar(&cfg.WorkspaceID, "workspace", cfg.WorkspaceID, "Workspace to verify")
	fs.StringVar(&cfg.Category, "category", "", "Restrict checks to one category prefix (AUTH, GOV, ORG, PROP, TMPL)")
	fs.StringVar(&cfg.Severity, "severity", "", "Restrict checks to one severity (critical, warning)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.WorkspaceID == "" {
		return Config{}, fmt.Errorf("workspace is required")
	}
	return cfg, nil
}

// Run executes the checks and writes a report. A non-nil error means a
// critical check failed or the run itself broke.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	shutdown, err := otel.Setup(ctx, "concord-verify")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() { _ = shutdown(ctx) }()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	report, err := govverify.New(store).RunAll(ctx, cfg.WorkspaceID, govverify.Options{
		Category: cfg.Category,
		Severity: govverify.Severity(cfg.Severity),
	})
	if err != nil {
		return fmt.Errorf("run checks: %w", err)
	}

	for _, res := range report.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%s %s [%s] %s\n", status, res.ID, res.Severity, res.Name)
		for _, v := range res.Violations {
			fmt.Fprintf(out, "     - %s\n", v)
		}
	}
	fmt.Fprintf(out, "%d checks, %d passed, %d failed\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed)

	if !report.CriticalsPassed() {
		return fmt.Errorf("critical checks failed")
	}
	return nil
}
