// Package seed installs the system role templates role provisioning depends
// on. Safe to rerun: templates are keyed by deterministic IDs and upserted.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/concordhq/concord/internal/platform/config"
	"github.com/concordhq/concord/internal/services/governance/domain/authority"
	"github.com/concordhq/concord/internal/services/governance/domain/role"
	"github.com/concordhq/concord/internal/services/governance/storage"
	"github.com/concordhq/concord/internal/services/governance/storage/sqlite"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"CONCORD_DB_PATH" envDefault:"concord.db"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the governance database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the store and installs the system templates for every authority
// level.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	templates := SystemTemplates(time.Now().UTC())
	err = store.InTx(ctx, func(tx storage.Store) error {
		for _, t := range templates {
			if err := tx.PutTemplate(ctx, t); err != nil {
				return fmt.Errorf("put template %s: %w", t.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "installed %d system templates\n", len(templates))
	return nil
}

var structuralDefaults = map[string]struct {
	purpose string
	rights  []string
}{
	"Secretary": {
		purpose: "Keep the circle's records: minutes, role definitions and governance history.",
		rights:  []string{"Interpret the circle's records when questions arise"},
	},
	"Facilitator": {
		purpose: "Run the circle's governance meetings and keep the consent process on track.",
		rights:  []string{"Rule on process objections during meetings"},
	},
}

// SystemTemplates derives the canonical system role templates from the
// authority policy table: one lead template per level plus the level's
// mandatory structural roles.
func SystemTemplates(now time.Time) []storage.TemplateRecord {
	var out []storage.TemplateRecord
	for _, level := range []authority.Level{
		authority.LevelDecides,
		authority.LevelFacilitates,
		authority.LevelConvenes,
	} {
		policy := authority.PolicyFor(level)
		for _, name := range policy.MandatoryRoleNames {
			kind := role.KindStructural
			purpose := structuralDefaults[name].purpose
			rights := append([]string(nil), structuralDefaults[name].rights...)
			if name == policy.LeadLabel {
				kind = role.KindCircleLead
				purpose = fmt.Sprintf("Hold the %s role: steward the circle's purpose and keep its governance whole.", name)
				rights = []string{"Resolve matters no other role in the circle holds"}
			}
			out = append(out, storage.TemplateRecord{
				ID:                    templateID(level, name),
				Name:                  name,
				RoleKind:              kind,
				AuthorityLevel:        level,
				DefaultPurpose:        purpose,
				DefaultDecisionRights: rights,
				IsCore:                true,
				CreatedAt:             now,
				UpdatedAt:             now,
			})
		}
	}
	return out
}

func templateID(level authority.Level, name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return fmt.Sprintf("sys-%s-%s", level, slug)
}
