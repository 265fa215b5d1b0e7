package commands

import (
	"fmt"

	"github.com/de-tools/top-users/pkg/models/domain"
	"github.com/de-tools/top-users/pkg/services/groups"
	"github.com/de-tools/top-users/pkg/store/usagefile"
	"github.com/spf13/cobra"
)

type AffiliationCmd struct {
	ifile        string
	ofile        string
	projects     string
	projectsFile string
	keep         bool
	drop         bool
}

func NewAffiliationCmd() *cobra.Command {
	fc := &AffiliationCmd{}
	cmd := &cobra.Command{
		Use:   "affiliation",
		Short: "Keep or drop identities by project group membership",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.ifile, "ifile", "", "aggregated per-user stats to filter")
	cmd.Flags().StringVar(&fc.ofile, "ofile", "", "output file after filtering")
	cmd.Flags().StringVar(&fc.projects, "projects", "", "comma-separated list of project group names")
	cmd.Flags().StringVar(&fc.projectsFile, "projects-file", "", "path to file with one project group name per line")
	cmd.Flags().BoolVar(&fc.keep, "keep", false, "keep only affiliated identities")
	cmd.Flags().BoolVar(&fc.drop, "drop", false, "drop affiliated identities")

	_ = cmd.MarkFlagRequired("ifile")
	_ = cmd.MarkFlagRequired("ofile")
	cmd.MarkFlagsMutuallyExclusive("projects", "projects-file")
	cmd.MarkFlagsOneRequired("projects", "projects-file")
	cmd.MarkFlagsMutuallyExclusive("keep", "drop")
	cmd.MarkFlagsOneRequired("keep", "drop")

	return cmd
}

func (fc *AffiliationCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	projects, err := fc.projectSet()
	if err != nil {
		return err
	}

	entries, err := usagefile.Read(fc.ifile)
	if err != nil {
		return err
	}

	resolver := groups.NewResolver()
	filtered := make(domain.UsageMap)
	for _, entry := range entries {
		member := resolver.MemberOfAny(ctx, entry.Identity, projects)
		if (fc.keep && member) || (fc.drop && !member) {
			filtered.Add(entry.Identity, entry.Seconds)
		}
	}

	if err := usagefile.Write(fc.ofile, filtered); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d identities)\n", fc.ofile, len(filtered))
	return nil
}

func (fc *AffiliationCmd) projectSet() (map[string]struct{}, error) {
	if fc.projectsFile != "" {
		return groups.ReadProjectsFile(fc.projectsFile)
	}
	return groups.ParseProjects(fc.projects), nil
}
