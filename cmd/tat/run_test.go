package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WylieMabel/TreesAndThat/config"
	"github.com/WylieMabel/TreesAndThat/ecohyd"
)

func smallConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Ecohyd.Rows, cfg.Ecohyd.Cols = 3, 3
	cfg.Social.Rows, cfg.Social.Cols = 3, 3
	cfg.Run.Years, cfg.Run.SpinUp = 2, 1
	cfg.Output = filepath.Join(t.TempDir(), "out")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestLoadClimate_Constant(t *testing.T) {
	cfg := smallConfig(t)
	tab, err := loadClimate(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, tab.Years())
	assert.Equal(t, cfg.Ecohyd.Initial.Tmax, tab.Max[1][10])
}

func TestRun_WritesResults(t *testing.T) {
	cfg := smallConfig(t)
	require.NoError(t, run(context.Background(), cfg, zerolog.Nop(), false))
	for _, fn := range []string{"fields.csv", "summary.csv"} {
		_, err := os.Stat(filepath.Join(cfg.Output, fn))
		assert.NoError(t, err, fn)
	}
}

func TestRun_Cancelled(t *testing.T) {
	cfg := smallConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, run(ctx, cfg, zerolog.Nop(), false), context.Canceled)
}

type failWriter struct{ lines int }

func (w *failWriter) WriteLine(...interface{}) error {
	if w.lines++; w.lines == 2 {
		return os.ErrClosed
	}
	return nil
}

func TestWriteDaily_ReturnsWriteError(t *testing.T) {
	days := []ecohyd.DayRecord{{Year: 0, Day: 0}, {Year: 0, Day: 1}, {Year: 0, Day: 2}}
	w := &failWriter{}
	err := writeDaily(w, days)
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.ErrorContains(t, err, "day 1")
	assert.Equal(t, 2, w.lines)
}
