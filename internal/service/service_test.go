package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subreverse/subreverse/internal/config"
	"github.com/subreverse/subreverse/internal/library"
	"github.com/subreverse/subreverse/internal/persistence"
)

func testConfig(dirs []string) config.Config {
	return config.Config{
		Media: config.MediaConfig{Dirs: dirs},
		Align: config.AlignConfig{
			PrimaryLanguage:   "en",
			SecondaryLanguage: "ru",
			ToleranceMS:       1000,
			Concurrency:       2,
			CronExpr:          "0 0 * * *",
		},
	}
}

func writePair(t *testing.T, dir, base string) library.PairRef {
	t.Helper()
	primary := filepath.Join(dir, base+"_en.srt")
	secondary := filepath.Join(dir, base+"_ru.srt")
	require.NoError(t, os.WriteFile(primary, primarySRT, 0o644))
	require.NoError(t, os.WriteFile(secondary, secondarySRT, 0o644))
	return library.PairRef{Base: base, PrimaryPath: primary, SecondaryPath: secondary}
}

func newTestService(t *testing.T, dirs []string) *AlignService {
	t.Helper()
	store, err := persistence.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	scanner, err := library.NewScanner(dirs, "en", "ru")
	require.NoError(t, err)

	return NewAlignService(testConfig(dirs), store, scanner)
}

func TestRunIngestsDiscoveredPairs(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "movie")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lonely_en.srt"), primarySRT, 0o644))

	svc := newTestService(t, []string{dir})
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Pairs, 1)
	assert.Zero(t, summary.Failed())
	assert.Equal(t, []string{filepath.Join(dir, "lonely_en.srt")}, summary.Unmatched)

	outcome := summary.Pairs[0]
	assert.Equal(t, "movie", outcome.Base)
	assert.Equal(t, 3, outcome.PrimaryCues)
	assert.Equal(t, 2, outcome.Matched)
	assert.Equal(t, int64(3), outcome.Inserted)

	rows, err := svc.store.LoadPairRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, int64(1), rows[0].SeqID)
	assert.Equal(t, "Hello world", rows[0].PrimaryText)
	assert.Equal(t, "movie_en.srt", rows[0].PrimaryFile)
}

func TestProcessPairsIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	good := writePair(t, dir, "good")
	bad := library.PairRef{
		Base:          "bad",
		PrimaryPath:   filepath.Join(dir, "missing_en.srt"),
		SecondaryPath: filepath.Join(dir, "missing_ru.srt"),
	}

	svc := newTestService(t, []string{dir})
	summary, err := svc.processPairs(context.Background(), []library.PairRef{bad, good}, nil)
	require.NoError(t, err)

	require.Len(t, summary.Pairs, 2)
	assert.Equal(t, 1, summary.Failed())
	assert.Error(t, summary.Pairs[0].Err)
	require.NoError(t, summary.Pairs[1].Err)
	assert.Equal(t, int64(3), summary.Pairs[1].Inserted)
}

func TestRunSequenceIDsContinueAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writePair(t, dir, "movie")

	svc := newTestService(t, []string{dir})
	ctx := context.Background()

	_, err := svc.Run(ctx)
	require.NoError(t, err)
	_, err = svc.Run(ctx)
	require.NoError(t, err)

	rows, err := svc.store.LoadPairRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, int64(4), rows[3].SeqID)
	assert.Equal(t, int64(6), rows[5].SeqID)
}

func TestRepairRewritesPairsInPlace(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "show_en.srt")
	secondary := filepath.Join(dir, "show_ru.srt")
	require.NoError(t, os.WriteFile(primary, []byte(
		"1\n00:00:00,000 --> 00:00:05,000\nOne long line\n"), 0o644))
	require.NoError(t, os.WriteFile(secondary, []byte(
		"1\n00:00:00,000 --> 00:00:02,000\nОдна\n\n"+
			"2\n00:00:02,000 --> 00:00:05,000\nдлинная строка\n"), 0o644))

	svc := newTestService(t, []string{dir})
	summary, err := svc.Repair(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Pairs, 1)
	require.NoError(t, summary.Pairs[0].Err)
	assert.Zero(t, summary.Pairs[0].Violations)
	assert.Equal(t, 1, summary.Pairs[0].PrimaryCues)
	assert.Equal(t, 1, summary.Pairs[0].SecondaryCues)

	rewritten, err := os.ReadFile(secondary)
	require.NoError(t, err)
	assert.Equal(t, "1\n00:00:00,000 --> 00:00:05,000\nОдна длинная строка\n", string(rewritten))
}
