package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/top-users/pkg/runtime/terminal/export"
	"github.com/de-tools/top-users/pkg/services/enrich"
	"github.com/spf13/cobra"
)

type GroupsCmd struct {
	ifile string
	ofile string
}

func NewGroupsCmd() *cobra.Command {
	gc := &GroupsCmd{}
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Sum measures per project from an enriched CSV",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.ifile, "ifile", "", "input enriched CSV file")
	cmd.Flags().StringVar(&gc.ofile, "ofile", "", "output CSV file for aggregated project measures")

	_ = cmd.MarkFlagRequired("ifile")
	_ = cmd.MarkFlagRequired("ofile")

	return cmd
}

func (gc *GroupsCmd) run(cmd *cobra.Command, _ []string) error {
	in, err := os.Open(gc.ifile)
	if err != nil {
		return fmt.Errorf("open %s: %w", gc.ifile, err)
	}
	defer in.Close()

	users, err := export.ReadEnrichedCSV(in)
	if err != nil {
		return err
	}
	totals := enrich.ProjectTotals(users)

	out, err := os.Create(gc.ofile)
	if err != nil {
		return fmt.Errorf("create %s: %w", gc.ofile, err)
	}
	defer out.Close()
	if err := export.WriteProjectTotalsCSV(out, totals); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d projects)\n", gc.ofile, len(totals))
	return nil
}
