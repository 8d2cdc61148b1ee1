package season

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WylieMabel/TreesAndThat/grid"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		start, end int
		ok         bool
	}{
		{1, 100, true},
		{0, 365, true},
		{0, 1, true},
		{100, 100, false},
		{200, 100, false},
		{-1, 100, false},
		{1, 366, false},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		cfg.CaniculaStart, cfg.CaniculaEnd = c.start, c.end
		err := cfg.Validate()
		if c.ok {
			assert.NoError(t, err, "[%d,%d)", c.start, c.end)
		} else {
			assert.ErrorIs(t, err, ErrConfig, "[%d,%d)", c.start, c.end)
		}
	}
}

func TestRegime_StrictBinaryPartition(t *testing.T) {
	for _, b := range [][2]int{{1, 100}, {0, 365}, {150, 220}, {364, 365}} {
		cfg := Config{CaniculaStart: b[0], CaniculaEnd: b[1]}
		ndry := 0
		for j := 0; j < DaysPerYear; j++ {
			r := cfg.Regime(j)
			require.True(t, r == Wet || r == Dry)
			inside := j >= b[0] && j < b[1]
			assert.Equal(t, inside, r == Dry, "day %d of [%d,%d)", j, b[0], b[1])
			if r == Dry {
				ndry++
			}
		}
		assert.Equal(t, b[1]-b[0], ndry)
	}
}

func TestJulian(t *testing.T) {
	assert.Equal(t, 0, Julian(0.))
	assert.Equal(t, 1, Julian(1./365.))
	assert.Equal(t, 364, Julian(364./365.))
	assert.Equal(t, 0, Julian(1.))
	assert.Equal(t, 100, Julian(3.+100./365.))
}

func TestJulian_AccumulatedClock(t *testing.T) {
	// the clock advances by repeated addition; every day must be visited once
	tm := 0.
	for d := 0; d < 3*DaysPerYear; d++ {
		require.Equal(t, d%DaysPerYear, Julian(tm), "step %d", d)
		tm += 24. / (24. * 365.)
	}
}

func TestScheduler_EachEventOncePerYear(t *testing.T) {
	s, err := NewScheduler(Config{CaniculaStart: 1, CaniculaEnd: 100})
	require.NoError(t, err)
	for year := 0; year < 3; year++ {
		s.BeginYear()
		assert.Equal(t, PreCanicula, s.Phase())
		counts := map[Event]int{}
		for d := 0; d < DaysPerYear; d++ {
			e := s.Dispatch(d)
			counts[e]++
			if d == 1 {
				assert.Equal(t, CaniculaStart, e)
			}
			if d == 100 {
				assert.Equal(t, CaniculaEnd, e)
			}
			// re-entrant dispatch on the same day never fires again
			assert.Equal(t, NoEvent, s.Dispatch(d))
		}
		assert.Equal(t, 1, counts[CaniculaStart])
		assert.Equal(t, 1, counts[CaniculaEnd])
		assert.Equal(t, PostCanicula, s.Phase())
		assert.Empty(t, s.Pending())
	}
}

func TestScheduler_PhaseMachine(t *testing.T) {
	s, err := NewScheduler(Config{CaniculaStart: 10, CaniculaEnd: 20})
	require.NoError(t, err)
	s.BeginYear()
	s.Dispatch(5)
	assert.Equal(t, PreCanicula, s.Phase())
	s.Dispatch(10)
	assert.Equal(t, InCanicula, s.Phase())
	s.Dispatch(20)
	assert.Equal(t, PostCanicula, s.Phase())
}

func TestScheduler_PendingWhenEndIs365(t *testing.T) {
	s, err := NewScheduler(Config{CaniculaStart: 300, CaniculaEnd: 365})
	require.NoError(t, err)
	s.BeginYear()
	for d := 0; d < DaysPerYear; d++ {
		s.Dispatch(d)
	}
	assert.Equal(t, []Event{CaniculaEnd}, s.Pending())
	assert.Empty(t, s.Pending())
}

func TestNewScheduler_RejectsInvalid(t *testing.T) {
	_, err := NewScheduler(Config{CaniculaStart: 100, CaniculaEnd: 1})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestFunctionalTypes(t *testing.T) {
	mask := []bool{true, false, true}
	assert.Equal(t, []int{grid.CoverCrop, grid.Bare, grid.CoverCrop}, FunctionalTypes(CaniculaStart, mask))
	assert.Equal(t, []int{grid.Grass, grid.Grass, grid.Grass}, FunctionalTypes(CaniculaEnd, mask))
}
