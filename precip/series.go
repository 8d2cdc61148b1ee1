package precip

import (
	"github.com/rs/zerolog"

	"github.com/WylieMabel/TreesAndThat/season"
)

const hoursPerYear = 24. * season.DaysPerYear

// Rasterize converts storms into an n-day depth series [mm/day]. An event
// covers days start/24 through end/24 (integer division) at intensity·24.
// Events are discarded when their start or end day lies past the series or
// keep rejects any day they cover.
func Rasterize(n int, storms []Storm, keep func(day int) bool) []float64 {
	o := make([]float64, n)
	for _, s := range storms {
		d0, d1 := int(s.Start)/24, int(s.End)/24
		if d0 < 0 || d1 >= n || !kept(d0, d1, keep) {
			continue
		}
		for d := d0; d <= d1; d++ {
			o[d] = s.Intensity * 24.
		}
	}
	return o
}

func kept(d0, d1 int, keep func(day int) bool) bool {
	if keep == nil {
		return true
	}
	for d := d0; d <= d1; d++ {
		if !keep(d) {
			return false
		}
	}
	return true
}

// Source supplies the daily rainfall depth broadcast to every cell
type Source interface {
	// BeginYear is called once before the first day of each annual loop
	BeginYear()
	// Depth today's rainfall [mm/day] given the day of year and its regime
	Depth(julian int, r season.Regime) float64
}

// OnTheFly advances the active regime's storm process one day at a time
type OnTheFly struct {
	wet, dry *Distribution
}

// NewOnTheFly builds independent wet and dry processes from one seed
func NewOnTheFly(cfg season.Config, seed int64, log zerolog.Logger) *OnTheFly {
	return &OnTheFly{
		wet: NewDistribution(cfg.Wet, NewRand(seed), log.With().Str("regime", "wet").Logger()),
		dry: NewDistribution(cfg.Dry, NewRand(seed+1), log.With().Str("regime", "dry").Logger()),
	}
}

func (o *OnTheFly) BeginYear() {}

func (o *OnTheFly) Depth(_ int, r season.Regime) float64 {
	if r == season.Dry {
		return o.dry.Advance(24.)
	}
	return o.wet.Advance(24.)
}

// Series pre-generates each year's daily depths from two independent storm
// processes, each rasterized onto its own regime's days, indexed by Julian day.
type Series struct {
	cfg      season.Config
	wet, dry *Distribution
	depth    []float64
}

// NewSeries builds the two regime processes from one seed
func NewSeries(cfg season.Config, seed int64, log zerolog.Logger) *Series {
	return &Series{
		cfg: cfg,
		wet: NewDistribution(cfg.Wet, NewRand(seed), log.With().Str("regime", "wet").Logger()),
		dry: NewDistribution(cfg.Dry, NewRand(seed+1), log.With().Str("regime", "dry").Logger()),
	}
}

func (s *Series) BeginYear() {
	s.depth = Year(s.cfg, s.wet.Storms(hoursPerYear), s.dry.Storms(hoursPerYear))
}

func (s *Series) Depth(julian int, _ season.Regime) float64 {
	if julian < 0 || julian >= len(s.depth) {
		return 0.
	}
	return s.depth[julian]
}

// Days returns the current year's series
func (s *Series) Days() []float64 { return append([]float64(nil), s.depth...) }

// Year merges wet and dry storm lists into one 365-day series, each list
// restricted to the days of its own regime
func Year(cfg season.Config, wet, dry []Storm) []float64 {
	w := Rasterize(season.DaysPerYear, wet, func(d int) bool { return cfg.Regime(d) == season.Wet })
	d := Rasterize(season.DaysPerYear, dry, func(d int) bool { return cfg.Regime(d) == season.Dry })
	for i := range w {
		w[i] += d[i]
	}
	return w
}

// Daily replays a fixed series indexed by Julian day, repeated every year
type Daily []float64

func (Daily) BeginYear() {}

func (d Daily) Depth(julian int, _ season.Regime) float64 {
	if julian < 0 || julian >= len(d) {
		return 0.
	}
	return d[julian]
}

var (
	_ Source = (*OnTheFly)(nil)
	_ Source = (*Series)(nil)
	_ Source = Daily(nil)
)
