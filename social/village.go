package social

import (
	"fmt"
	"math/rand"

	"github.com/maseology/mmaths"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
	"github.com/rs/zerolog"
)

// Params village settings
type Params struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	FarmSize    int     `yaml:"farm_size"`    // plots per side of a square farm
	LeadFarmers int     `yaml:"lead_farmers"` // farms knowing and practising WSA from the start
	Desperation float64 `yaml:"desperation"`  // relative yield drop driving a knowing farmer to adopt
	Jealousy    float64 `yaml:"jealousy"`     // relative yield advantage of adopting neighbours driving adoption
	Grace       int     `yaml:"grace"`        // [yr] unrewarding years before an adopter gives up
	Contact     float64 `yaml:"contact"`      // yearly probability of learning WSA from a knowing neighbour
	Scenario    string  `yaml:"scenario"`
	Seed        int64   `yaml:"seed"`
}

// DefaultParams a 51×51 plot village of 3×3 plot farms
func DefaultParams() Params {
	return Params{
		Rows:        51,
		Cols:        51,
		FarmSize:    3,
		LeadFarmers: 5,
		Desperation: .2,
		Jealousy:    .1,
		Grace:       2,
		Contact:     .3,
		Scenario:    "baseline",
		Seed:        1,
	}
}

// Validate checks p
func (p Params) Validate() error {
	switch {
	case p.Rows <= 0 || p.Cols <= 0:
		return fmt.Errorf("%w: %d×%d plots", ErrParams, p.Rows, p.Cols)
	case p.FarmSize <= 0:
		return fmt.Errorf("%w: farm size %d", ErrParams, p.FarmSize)
	case p.LeadFarmers < 0:
		return fmt.Errorf("%w: %d lead farmers", ErrParams, p.LeadFarmers)
	case p.Contact < 0. || p.Contact > 1.:
		return fmt.Errorf("%w: contact probability %f", ErrParams, p.Contact)
	case p.Grace < 0:
		return fmt.Errorf("%w: grace %d", ErrParams, p.Grace)
	}
	return nil
}

type farmer struct {
	id               int
	plots            []int // [who]
	nbrs             []int // adjacent farms
	lead             bool
	knows, practises bool
	desp, jeal       float64 // personal thresholds
	prev             float64 // last year's mean plot yield
	bad              int     // consecutive unrewarding years
}

// Village farms laid out as square blocks over the plot grid
type Village struct {
	p       Params
	fields  []Field
	farmers []farmer
	rng     *rand.Rand
	year    int
	log     zerolog.Logger
}

// NewVillage lays out farms, draws personal thresholds and picks the lead farmers
func NewVillage(p Params, log zerolog.Logger) (*Village, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(mrg63k3a.New())
	rng.Seed(p.Seed)
	v := &Village{p: p, rng: rng, log: log}

	br, bc := (p.Rows+p.FarmSize-1)/p.FarmSize, (p.Cols+p.FarmSize-1)/p.FarmSize
	v.farmers = make([]farmer, br*bc)
	for k := range v.farmers {
		f := &v.farmers[k]
		f.id = k
		f.desp = mmaths.LinearTransform(.5*p.Desperation, 1.5*p.Desperation, rng.Float64())
		f.jeal = mmaths.LinearTransform(.5*p.Jealousy, 1.5*p.Jealousy, rng.Float64())
		bi, bj := k/bc, k%bc
		for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			if i, j := bi+d[0], bj+d[1]; i >= 0 && i < br && j >= 0 && j < bc {
				f.nbrs = append(f.nbrs, i*bc+j)
			}
		}
	}

	v.fields = make([]Field, p.Rows*p.Cols)
	for i := 0; i < p.Rows; i++ {
		for j := 0; j < p.Cols; j++ {
			w := i*p.Cols + j
			k := (i/p.FarmSize)*bc + j/p.FarmSize
			v.fields[w] = Field{Who: w, Xcor: j - p.Cols/2, Ycor: p.Rows/2 - i, OwnerID: k}
			v.farmers[k].plots = append(v.farmers[k].plots, w)
		}
	}

	nl := p.LeadFarmers
	if nl > len(v.farmers) {
		log.Warn().Int("lead", nl).Int("farmers", len(v.farmers)).Msg("more lead farmers than farms")
		nl = len(v.farmers)
	}
	for _, k := range rng.Perm(len(v.farmers))[:nl] {
		f := &v.farmers[k]
		f.lead, f.knows, f.practises = true, true, true
	}
	v.sync()
	return v, nil
}

func (v *Village) sync() {
	for _, f := range v.farmers {
		for _, w := range f.plots {
			v.fields[w].ImplementsWSA, v.fields[w].OwnerKnowsWSA = f.practises, f.knows
		}
	}
}

// Params returns the village settings
func (v *Village) Params() Params { return v.p }

// Fields returns a copy of every plot, in Who order
func (v *Village) Fields() []Field { return append([]Field(nil), v.fields...) }

// SetYields assigns yields to plots
func (v *Village) SetYields(y map[int]float64) error {
	for w, x := range y {
		if w < 0 || w >= len(v.fields) {
			return fmt.Errorf("%w: who %d", ErrUnknownWho, w)
		}
		v.fields[w].Yield = x
	}
	return nil
}

func (v *Village) mean(plots []int) float64 {
	s := 0.
	for _, w := range plots {
		s += v.fields[w].Yield
	}
	return s / float64(len(plots))
}

// Step runs one farming year: knowledge passes between neighbouring farms,
// then every farmer weighs its own harvest against last year's and against
// its neighbours'.
func (v *Village) Step() error {
	y := make([]float64, len(v.farmers))
	for k, f := range v.farmers {
		y[k] = v.mean(f.plots)
	}

	learnt := make([]bool, len(v.farmers))
	for k, f := range v.farmers {
		if f.knows {
			continue
		}
		for _, n := range f.nbrs {
			if v.farmers[n].knows && v.rng.Float64() < v.p.Contact {
				learnt[k] = true
				break
			}
		}
	}

	nadopt, nquit := 0, 0
	for k := range v.farmers {
		f := &v.farmers[k]
		if learnt[k] {
			f.knows = true
		}
		ya, na, yn, nn := 0., 0, 0., 0 // neighbour yields by practice
		for _, n := range f.nbrs {
			if v.farmers[n].practises {
				ya += y[n]
				na++
			} else {
				yn += y[n]
				nn++
			}
		}
		switch {
		case f.practises:
			if nn > 0 && y[k] < yn/float64(nn) {
				f.bad++
			} else {
				f.bad = 0
			}
			if !f.lead && f.bad > v.p.Grace {
				f.practises, f.bad = false, 0
				nquit++
			}
		case f.knows:
			desperate := f.prev > 0. && y[k] < (1.-f.desp)*f.prev
			jealous := na > 0 && ya/float64(na) > (1.+f.jeal)*y[k]
			if desperate || jealous {
				f.practises = true
				nadopt++
			}
		}
		f.prev = y[k]
	}
	v.sync()
	v.year++
	v.log.Debug().Int("year", v.year).Int("adopted", nadopt).Int("abandoned", nquit).Msg("farming year")
	return nil
}

var _ Model = (*Village)(nil)
