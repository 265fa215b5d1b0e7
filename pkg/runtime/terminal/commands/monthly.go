package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/top-users/pkg/adapters"
	"github.com/de-tools/top-users/pkg/models/domain"
	"github.com/de-tools/top-users/pkg/services/config"
	"github.com/de-tools/top-users/pkg/services/usage"
	"github.com/de-tools/top-users/pkg/store/duckdb"
	duckdbusage "github.com/de-tools/top-users/pkg/store/duckdb/usage"
	"github.com/de-tools/top-users/pkg/store/sacct"
	"github.com/de-tools/top-users/pkg/store/usagefile"
	"github.com/spf13/cobra"
)

type MonthlyCmd struct {
	start      string
	end        string
	partition  string
	outdir     string
	configPath string
	archive    string
	source     usage.Source
}

func NewMonthlyCmd(source usage.Source) *cobra.Command {
	mc := &MonthlyCmd{source: source}
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Collect monthly accounting stats, one usage file per month",
		RunE:  mc.run,
	}

	cmd.Flags().StringVar(&mc.start, "start", "", "start date (YYYY-MM-DD) or month (YYYY-MM)")
	cmd.Flags().StringVar(&mc.end, "end", "", "optional end date; accepts YYYY-MM-DD or YYYY-MM")
	cmd.Flags().StringVar(&mc.partition, "partition", "",
		"comma-separated partition filters (supports wildcards like 'lrz*'); prefix matches without wildcards")
	cmd.Flags().StringVar(&mc.outdir, "outdir", ".", "output directory for YYYY-MM.txt files")
	cmd.Flags().StringVar(&mc.configPath, "config", "", "path to the tool configuration file")
	cmd.Flags().StringVar(&mc.archive, "archive", "", "optional DuckDB file to archive monthly totals into")

	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (mc *MonthlyCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(mc.configPath)
	if err != nil {
		return err
	}

	startSpec, err := ParseDateOrMonth(mc.start)
	if err != nil {
		return err
	}
	var endSpec *DateSpec
	if mc.end != "" {
		spec, err := ParseDateOrMonth(mc.end)
		if err != nil {
			return err
		}
		endSpec = &spec
	}
	start, end, err := ResolveRange(startSpec, endSpec, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(mc.outdir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	partition := mc.partition
	if partition == "" {
		partition = cfg.Sacct.DefaultPartition
	}
	filter := usage.ParsePartitionFilter(partition)

	source := mc.source
	if source == nil {
		source = sacct.NewCollector(sacct.Settings{Binary: cfg.Sacct.Binary})
	}

	var archiveStore duckdbusage.Store
	if mc.archive != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: mc.archive})
		if err != nil {
			return fmt.Errorf("open archive %s: %w", mc.archive, err)
		}
		defer db.Close()
		archiveStore, err = duckdbusage.NewStore(db)
		if err != nil {
			return err
		}
	}

	sink := func(month string, totals domain.UsageMap) error {
		path := filepath.Join(mc.outdir, month+".txt")
		if err := usagefile.Write(path, totals); err != nil {
			return err
		}
		if archiveStore != nil {
			return archiveStore.Add(ctx, month, adapters.MapUsageMapToStore(month, totals))
		}
		return nil
	}

	service := usage.NewMonthlyService(source, filter)
	return service.Run(ctx, start, end, sink)
}
