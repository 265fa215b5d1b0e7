package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/top-users/pkg/runtime/terminal/export"
	"github.com/de-tools/top-users/pkg/services/config"
	"github.com/de-tools/top-users/pkg/services/enrich"
	"github.com/de-tools/top-users/pkg/services/groups"
	"github.com/de-tools/top-users/pkg/store/directory"
	"github.com/de-tools/top-users/pkg/store/usagefile"
	"github.com/spf13/cobra"
)

type EnrichCmd struct {
	ifile      string
	ofile      string
	configPath string
}

func NewEnrichCmd() *cobra.Command {
	ec := &EnrichCmd{}
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Enrich per-user stats via the directory service and write CSV",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.ifile, "ifile", "", "input two-column file (user and measure)")
	cmd.Flags().StringVar(&ec.ofile, "ofile", "", "output CSV file for enriched user data")
	cmd.Flags().StringVar(&ec.configPath, "config", "", "path to the tool configuration file")

	_ = cmd.MarkFlagRequired("ifile")
	_ = cmd.MarkFlagRequired("ofile")

	return cmd
}

func (ec *EnrichCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(ec.configPath)
	if err != nil {
		return err
	}
	if cfg.Directory.BaseURL == "" {
		return fmt.Errorf("directory base_url is not configured")
	}

	settings := directory.Settings{BaseURL: cfg.Directory.BaseURL}
	if cfg.Directory.ProfilePath != "" {
		creds, err := config.LoadCredentials(cfg.Directory.ProfilePath)
		if err != nil {
			return err
		}
		settings.User = creds.User
		settings.Password = creds.Password
	}

	entries, err := usagefile.Read(ec.ifile)
	if err != nil {
		return err
	}

	enricher := enrich.NewEnricher(
		directory.NewClient(settings),
		groups.NewResolver(),
		enrich.Settings{
			InitiativeSuffix: cfg.Enrich.InitiativeSuffix,
			InitiativeTag:    cfg.Enrich.InitiativeTag,
		},
	)
	users := enricher.Enrich(ctx, entries)

	f, err := os.Create(ec.ofile)
	if err != nil {
		return fmt.Errorf("create %s: %w", ec.ofile, err)
	}
	defer f.Close()
	if err := export.WriteEnrichedCSV(f, users); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d users)\n", ec.ofile, len(users))
	return nil
}
