package service

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/subreverse/subreverse/internal/config"
	"github.com/subreverse/subreverse/internal/library"
	"github.com/subreverse/subreverse/internal/persistence"
	"github.com/subreverse/subreverse/internal/subtitle"
	"github.com/subreverse/subreverse/pkg/icron"
	"github.com/subreverse/subreverse/pkg/log"
)

// AlignService scans the configured directories for bilingual subtitle
// pairs, aligns each pair and hands the resulting rows to the store.
type AlignService struct {
	cfg     config.Config
	store   *persistence.SQLiteStore
	scanner *library.Scanner
}

func NewAlignService(
	cfg config.Config,
	store *persistence.SQLiteStore,
	scanner *library.Scanner,
) *AlignService {
	return &AlignService{
		cfg:     cfg,
		store:   store,
		scanner: scanner,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers alignment runs on the configured cron expression.
// Overlapping triggers collapse into the in-flight run.
func (s *AlignService) Schedule(ctx context.Context, c *cron.Cron) error {
	runFunc := func() {
		_, _, _ = singleflightGroup.Do("run", func() (any, error) {
			summary, err := s.Run(ctx)
			if err != nil {
				log.Error("Alignment run failed: %v", err)
				return nil, err
			}
			log.Info("Alignment run finished: %d pairs, %d failed", len(summary.Pairs), summary.Failed())
			return nil, nil
		})
	}

	if _, err := c.AddFunc(s.cfg.Align.CronExpr, runFunc); err != nil {
		return err
	}

	if next, err := icron.NextTrigger(s.cfg.Align.CronExpr, time.Now()); err == nil {
		log.Info("Next alignment run at %s", next.Format(time.RFC3339))
	}
	return nil
}

// Run performs one full pass: scan, align every discovered pair, ingest.
func (s *AlignService) Run(ctx context.Context) (*RunSummary, error) {
	scan, err := s.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for _, single := range scan.Unmatched {
		log.Warn("Subtitle file without counterpart: %s", single)
	}
	log.Info("Found %d subtitle pairs", len(scan.Pairs))

	return s.processPairs(ctx, scan.Pairs, scan.Unmatched)
}

// processPairs fans out one unit of work per pair and collects results after
// all units complete. Units share nothing and never cancel each other; a
// failed pair is reported in its own outcome. Ingestion happens at fan-in so
// sequence numbers stay contiguous.
func (s *AlignService) processPairs(ctx context.Context, pairs []library.PairRef, unmatched []string) (*RunSummary, error) {
	outcomes := make([]PairOutcome, len(pairs))
	results := make([]*AlignResult, len(pairs))

	var g errgroup.Group
	g.SetLimit(s.cfg.Align.Concurrency)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			outcomes[i], results[i] = s.alignOne(pair)
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		if results[i] == nil {
			continue
		}
		startSeq, err := s.store.NextSeqID(ctx)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		rows := buildPairRows(results[i], startSeq)
		inserted, err := s.store.InsertPairRows(ctx, rows)
		if err != nil {
			outcomes[i].Err = err
			continue
		}
		outcomes[i].Inserted = inserted
		log.Info("Ingested %d rows for pair %s", inserted, outcomes[i].Base)
	}

	return &RunSummary{Pairs: outcomes, Unmatched: unmatched}, nil
}

// alignOne processes a single pair. Never propagates an error: the outcome
// carries it.
func (s *AlignService) alignOne(pair library.PairRef) (PairOutcome, *AlignResult) {
	outcome := PairOutcome{Base: pair.Base}

	primaryData, err := os.ReadFile(pair.PrimaryPath)
	if err != nil {
		outcome.Err = err
		return outcome, nil
	}
	secondaryData, err := os.ReadFile(pair.SecondaryPath)
	if err != nil {
		outcome.Err = err
		return outcome, nil
	}

	result, err := AlignPair(primaryData, secondaryData, pair.PrimaryPath, pair.SecondaryPath, s.cfg.Align.Tolerance())
	if err != nil {
		outcome.Err = err
		return outcome, nil
	}

	outcome.PrimaryCues = len(result.Primary.Cues)
	outcome.SecondaryCues = len(result.Secondary.Cues)
	for _, p := range result.Pairs {
		if p.Secondary != nil {
			outcome.Matched++
		}
	}
	return outcome, result
}

// Repair rewrites every discovered pair in place with congruent
// segmentation — the cleanup-tool side of the pipeline. Same fan-out rules
// as Run.
func (s *AlignService) Repair(ctx context.Context) (*RunSummary, error) {
	scan, err := s.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]PairOutcome, len(scan.Pairs))

	var g errgroup.Group
	g.SetLimit(s.cfg.Align.Concurrency)
	for i, pair := range scan.Pairs {
		i, pair := i, pair
		g.Go(func() error {
			outcomes[i] = s.repairOne(pair)
			return nil
		})
	}
	_ = g.Wait()

	return &RunSummary{Pairs: outcomes, Unmatched: scan.Unmatched}, nil
}

func (s *AlignService) repairOne(pair library.PairRef) PairOutcome {
	outcome := PairOutcome{Base: pair.Base}

	primaryData, err := os.ReadFile(pair.PrimaryPath)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	secondaryData, err := os.ReadFile(pair.SecondaryPath)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	primary, secondary, violations, err := SynchronizePair(primaryData, secondaryData, pair.PrimaryPath, pair.SecondaryPath)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Violations = violations
	if violations > 0 {
		log.Warn("Pair %s still has %d containment violations after synchronization", pair.Base, violations)
	}

	if err := subtitle.WriteFile(pair.PrimaryPath, primary); err != nil {
		outcome.Err = err
		return outcome
	}
	if err := subtitle.WriteFile(pair.SecondaryPath, secondary); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.PrimaryCues = len(primary.Cues)
	outcome.SecondaryCues = len(secondary.Cues)
	return outcome
}
