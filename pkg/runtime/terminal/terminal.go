package terminal

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/top-users/pkg/runtime/terminal/commands"
	"github.com/de-tools/top-users/pkg/services/usage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	// Source overrides the accounting data source; when nil the monthly
	// command builds an sacct collector from its configuration.
	Source usage.Source
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topusers",
		Short: "SLURM accounting usage reports per user",
	}
	cmd.SetOut(opts.Output)

	cmd.AddCommand(commands.NewMonthlyCmd(opts.Source))
	cmd.AddCommand(commands.NewAggregateCmd())
	cmd.AddCommand(commands.NewAffiliationCmd())
	cmd.AddCommand(commands.NewEnrichCmd())
	cmd.AddCommand(commands.NewEmailsCmd())
	cmd.AddCommand(commands.NewGroupsCmd())

	return cmd
}
