package coupling

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WylieMabel/TreesAndThat/climate"
	"github.com/WylieMabel/TreesAndThat/ecohyd"
	"github.com/WylieMabel/TreesAndThat/precip"
	"github.com/WylieMabel/TreesAndThat/season"
	"github.com/WylieMabel/TreesAndThat/social"
)

// plots numbered in reverse so Who never equals the cell index
func plots(rows, cols int) []social.Field {
	o := make([]social.Field, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			o = append(o, social.Field{Who: rows*cols - 1 - len(o), Xcor: j - cols/2, Ycor: rows/2 - i, OwnerID: j})
		}
	}
	return o
}

type fakeModel struct {
	fields []social.Field
	yields []map[int]float64
	steps  int
}

func (f *fakeModel) Fields() []social.Field { return append([]social.Field(nil), f.fields...) }

func (f *fakeModel) SetYields(y map[int]float64) error {
	f.yields = append(f.yields, y)
	return nil
}

func (f *fakeModel) Step() error {
	f.steps++
	for i := range f.fields {
		f.fields[i].ImplementsWSA = !f.fields[i].ImplementsWSA
	}
	return nil
}

func TestMask_Orientation(t *testing.T) {
	fs := plots(2, 3)
	fs[2].ImplementsWSA = true // top right
	fs[3].ImplementsWSA = true // bottom left
	m, err := Mask(fs, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, true, false, false}, m)
	assert.Equal(t, 1, fs[0].Ycor)
	assert.Equal(t, -1, fs[0].Xcor)
}

func TestMask_MissingPlot(t *testing.T) {
	_, err := Mask(plots(2, 2)[:3], 2, 2)
	assert.ErrorIs(t, err, ErrPlotMissing)
}

func TestYields(t *testing.T) {
	fs := plots(2, 2)
	y, err := Yields(fs, []float64{1., 2., 3., 4.}, 2, 2, 2.)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{3: 2., 2: 4., 1: 6., 0: 8.}, y)

	_, err = Yields(fs, []float64{1.}, 2, 2, 1.)
	assert.Error(t, err)
}

func TestSummarise(t *testing.T) {
	fs := plots(2, 2)
	fs[0].ImplementsWSA, fs[0].Yield, fs[2].Yield = true, 3., 1.
	var tab Table
	require.NoError(t, tab.Record(1, 100., fs))
	ss := Summarise(tab.Rows, Meta{LeadFarmers: 2, UniqueID: "x"})
	require.Len(t, ss, 2)
	s := ss[0]
	assert.Equal(t, 0, s.FarmerID)
	assert.Equal(t, 1, s.Year)
	assert.Equal(t, 2, s.NumberofFields)
	assert.Equal(t, .5, s.ImplementingWSA)
	assert.Equal(t, 4., s.TotalYield)
	assert.Equal(t, -1., s.MeanXCor)
	assert.Equal(t, .5, s.MeanYCor)
	assert.Equal(t, "x", s.UniqueID)
}

func newEco(t *testing.T) *ecohyd.Model {
	t.Helper()
	cfg := ecohyd.DefaultConfig()
	cfg.Rows, cfg.Cols = 2, 2
	m, err := ecohyd.New(cfg, ecohyd.WithRain(precip.Daily(make([]float64, season.DaysPerYear))))
	require.NoError(t, err)
	return m
}

func TestDriver_Run(t *testing.T) {
	eco := newEco(t)
	soc := &fakeModel{fields: plots(2, 2)}
	var tab Table
	d, err := NewDriver(eco, soc, climate.Constant(3, 23., 26., 20.), &tab, Params{Years: 3, SpinUp: 2, YieldFactor: 1.}, zerolog.Nop())
	require.NoError(t, err)
	var years []int
	d.OnYear = func(yr int, h *ecohyd.Harvest) { years = append(years, yr) }

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, 5, eco.Year())
	assert.Equal(t, 3, soc.steps)
	assert.Equal(t, []int{1, 2, 3}, years)
	require.Len(t, soc.yields, 3)
	assert.Len(t, soc.yields[0], 4)
	assert.Len(t, tab.Rows, 4*4)
	assert.Equal(t, 3, tab.Rows[len(tab.Rows)-1].Year)
	assert.Zero(t, tab.Rows[len(tab.Rows)-1].TotalYearRainfall)

	// no adoption through spin-up and the first year, then it alternates
	assert.InDelta(t, 1.075, eco.Grid().SoilHealth[0], 1e-12)
}

func TestDriver_AdoptionReachesSoilHealth(t *testing.T) {
	eco := newEco(t)
	fs := plots(2, 2)
	for i := range fs {
		fs[i].ImplementsWSA = true
	}
	soc := &fakeModel{fields: fs}
	d, err := NewDriver(eco, soc, climate.Constant(2, 23., 26., 20.), &Table{}, Params{Years: 2, YieldFactor: 1.}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, d.Run(context.Background()))
	// true then false after the first farming year flips it
	assert.InDelta(t, 1.075, eco.Grid().SoilHealth[0], 1e-12)
}

func TestDriver_Cancelled(t *testing.T) {
	eco := newEco(t)
	soc := &fakeModel{fields: plots(2, 2)}
	var tab Table
	d, err := NewDriver(eco, soc, climate.Constant(1, 23., 26., 20.), &tab, Params{Years: 1, SpinUp: 1}, zerolog.Nop())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, d.Run(ctx), context.Canceled)
	assert.Zero(t, eco.Year())
	assert.Len(t, tab.Rows, 4)
}

func TestNewDriver_ShortClimate(t *testing.T) {
	_, err := NewDriver(newEco(t), &fakeModel{}, climate.Constant(1, 23., 26., 20.), &Table{}, Params{Years: 2}, zerolog.Nop())
	assert.Error(t, err)
}

func TestCSVRecorder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := NewCSVRecorder(dir, NewMeta(1, "baseline", "Current Climate"))
	require.NoError(t, r.Record(0, 0., plots(2, 2)))
	require.NoError(t, r.Close())
	for _, fn := range []string{"fields.csv", "summary.csv"} {
		b, err := os.ReadFile(filepath.Join(dir, fn))
		require.NoError(t, err, fn)
		assert.NotEmpty(t, b)
	}
}

var errDiskFull = errors.New("disk full")

// failWriter fails on line n
type failWriter struct{ n, lines int }

func (w *failWriter) WriteLine(...interface{}) error {
	if w.lines++; w.lines == w.n {
		return errDiskFull
	}
	return nil
}

func TestCSVRecorder_WriteErrors(t *testing.T) {
	rows := make([]Row, 0, 4)
	for _, f := range plots(2, 2) {
		rows = append(rows, Row{Field: f})
	}
	w := &failWriter{n: 3}
	err := writeFields(w, rows)
	assert.ErrorIs(t, err, errDiskFull)
	assert.ErrorContains(t, err, "row 2")
	assert.Equal(t, 3, w.lines)

	err = writeSummary(&failWriter{n: 1}, Summarise(rows, NewMeta(1, "baseline", "Current Climate")))
	assert.ErrorIs(t, err, errDiskFull)
	assert.NoError(t, writeFields(&failWriter{}, rows))
}

func TestClimateScenario(t *testing.T) {
	c := season.DefaultConfig()
	assert.Equal(t, "Current Climate", ClimateScenario(c))
	c.Wet.MeanDepth = 8.
	assert.Equal(t, "Warm Climate", ClimateScenario(c))
}
