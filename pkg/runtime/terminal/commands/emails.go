package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/de-tools/top-users/pkg/runtime/terminal/export"
	"github.com/de-tools/top-users/pkg/services/config"
	"github.com/de-tools/top-users/pkg/services/enrich"
	"github.com/spf13/cobra"
)

type EmailsCmd struct {
	ifile      string
	ofile      string
	n          int
	configPath string
}

func NewEmailsCmd() *cobra.Command {
	ec := &EmailsCmd{}
	cmd := &cobra.Command{
		Use:   "emails",
		Short: "Extract top N external email addresses from an enriched CSV",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.ifile, "ifile", "", "input enriched CSV file")
	cmd.Flags().StringVar(&ec.ofile, "ofile", "", "output file for semicolon-separated email list")
	cmd.Flags().IntVarP(&ec.n, "count", "n", 0, "number of top email addresses to extract")
	cmd.Flags().StringVar(&ec.configPath, "config", "", "path to the tool configuration file")

	_ = cmd.MarkFlagRequired("ifile")
	_ = cmd.MarkFlagRequired("ofile")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

func (ec *EmailsCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(ec.configPath)
	if err != nil {
		return err
	}

	f, err := os.Open(ec.ifile)
	if err != nil {
		return fmt.Errorf("open %s: %w", ec.ifile, err)
	}
	defer f.Close()

	users, err := export.ReadEnrichedCSV(f)
	if err != nil {
		return err
	}

	emails := enrich.TopEmails(users, ec.n, cfg.Enrich.SkipEmailDomain)
	out := strings.Join(emails, ";") + "\n"
	if err := os.WriteFile(ec.ofile, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", ec.ofile, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d addresses)\n", ec.ofile, len(emails))
	return nil
}
