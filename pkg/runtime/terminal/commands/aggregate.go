package commands

import (
	"fmt"

	"github.com/de-tools/top-users/pkg/store/usagefile"
	"github.com/spf13/cobra"
)

type AggregateCmd struct {
	datadir string
	ofile   string
}

func NewAggregateCmd() *cobra.Command {
	ac := &AggregateCmd{}
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Merge all monthly usage files into one totals file",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.datadir, "datadir", "", "directory with monthly *.txt files")
	cmd.Flags().StringVar(&ac.ofile, "ofile", "", "output file for totals")

	_ = cmd.MarkFlagRequired("datadir")
	_ = cmd.MarkFlagRequired("ofile")

	return cmd
}

func (ac *AggregateCmd) run(cmd *cobra.Command, _ []string) error {
	totals, err := usagefile.MergeDir(ac.datadir)
	if err != nil {
		return err
	}
	if err := usagefile.Write(ac.ofile, totals); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d identities)\n", ac.ofile, len(totals))
	return nil
}
