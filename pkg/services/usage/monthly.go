package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/top-users/pkg/models/domain"
	"github.com/rs/zerolog"
)

// RecordStream is a single-pass stream of accounting lines backed by an
// external process. Err reports a process failure once the stream is
// exhausted; Close reaps the process on early termination.
type RecordStream interface {
	LineSource
	Err() error
	Close() error
}

// Source produces one accounting stream per date window. Implemented by
// sacct.Collector.
type Source interface {
	Collect(ctx context.Context, first, last time.Time, partitionHint string) (RecordStream, error)
}

// MonthSink receives one finished month of usage. The map is handed over:
// the service does not touch it after the call.
type MonthSink func(month string, usage domain.UsageMap) error

// MonthlyService runs the collect-aggregate loop month by month. Months are
// processed strictly sequentially: one external process at a time, each
// month persisted via the sink before the next is requested, so memory
// stays bounded by a single month's identity set.
type MonthlyService struct {
	source Source
	filter PartitionFilter
}

func NewMonthlyService(source Source, filter PartitionFilter) *MonthlyService {
	return &MonthlyService{source: source, filter: filter}
}

func (s *MonthlyService) Run(ctx context.Context, start, end time.Time, sink MonthSink) error {
	logger := zerolog.Ctx(ctx)

	spans, err := MonthSpans(start, end)
	if err != nil {
		return err
	}

	// A lone fully qualified filter is pushed down to the accounting
	// command; everything else is filtered client side.
	hint := s.filter.ServerSide()

	for _, span := range spans {
		month := span.Month()
		logger.Info().Str("month", month).Msg("collecting accounting data")

		totals, tally, err := s.collectMonth(ctx, span, hint)
		if err != nil {
			return fmt.Errorf("collect %s: %w", month, err)
		}

		logger.Info().
			Str("month", month).
			Int("lines", tally.Lines).
			Int("matched", tally.Matched).
			Int("skipped", tally.Skipped).
			Int("identities", len(totals)).
			Msg("month aggregated")

		if err := sink(month, totals); err != nil {
			return fmt.Errorf("persist %s: %w", month, err)
		}
	}
	return nil
}

func (s *MonthlyService) collectMonth(
	ctx context.Context,
	span domain.DateRange,
	hint string,
) (domain.UsageMap, Tally, error) {
	stream, err := s.source.Collect(ctx, span.First, span.Last, hint)
	if err != nil {
		return nil, Tally{}, err
	}
	defer stream.Close()

	// The stream is drained before the exit status is checked, so totals
	// hold whatever valid data arrived even when the process failed.
	totals, tally := Aggregate(stream, s.filter, nil)
	return totals, tally, stream.Err()
}
