package coupling

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/maseology/mmio"

	"github.com/WylieMabel/TreesAndThat/social"
)

// Row one plot in one year
type Row struct {
	social.Field
	Year              int
	TotalYearRainfall float64 // [mm] zero before the first year
}

// Meta run-level columns of the summary
type Meta struct {
	LeadFarmers     int
	SocialScenario  string
	ClimateScenario string
	UniqueID        string
}

// Summary one farmer in one year
type Summary struct {
	FarmerID, Year     int
	MeanXCor, MeanYCor float64
	ImplementingWSA    float64 // fraction of the farmer's plots
	KnowsWSA           float64
	TotalYield         float64
	NumberofFields     int
	Meta
}

// Recorder receives the plots after every farming year
type Recorder interface {
	Record(year int, rainfall float64, fields []social.Field) error
	Close() error
}

func b2f(b bool) float64 {
	if b {
		return 1.
	}
	return 0.
}

// Summarise groups rows by farmer and year
func Summarise(rows []Row, m Meta) []Summary {
	type key struct{ id, yr int }
	agg := make(map[key]*Summary)
	for _, r := range rows {
		k := key{r.OwnerID, r.Year}
		s, ok := agg[k]
		if !ok {
			s = &Summary{FarmerID: r.OwnerID, Year: r.Year, Meta: m}
			agg[k] = s
		}
		s.MeanXCor += float64(r.Xcor)
		s.MeanYCor += float64(r.Ycor)
		s.ImplementingWSA += b2f(r.ImplementsWSA)
		s.KnowsWSA += b2f(r.OwnerKnowsWSA)
		s.TotalYield += r.Yield
		s.NumberofFields++
	}
	o := make([]Summary, 0, len(agg))
	for _, s := range agg {
		n := float64(s.NumberofFields)
		s.MeanXCor /= n
		s.MeanYCor /= n
		s.ImplementingWSA /= n
		s.KnowsWSA /= n
		o = append(o, *s)
	}
	sort.Slice(o, func(i, j int) bool {
		if o[i].FarmerID != o[j].FarmerID {
			return o[i].FarmerID < o[j].FarmerID
		}
		return o[i].Year < o[j].Year
	})
	return o
}

// Table keeps every row in memory
type Table struct {
	Rows []Row
}

func (t *Table) Record(year int, rain float64, fields []social.Field) error {
	for _, f := range fields {
		t.Rows = append(t.Rows, Row{Field: f, Year: year, TotalYearRainfall: rain})
	}
	return nil
}

func (t *Table) Close() error { return nil }

// CSVRecorder keeps rows in memory and writes fields.csv and the farmer
// summary.csv into its directory on Close
type CSVRecorder struct {
	Table
	dir  string
	meta Meta
}

// NewCSVRecorder creates the output directory
func NewCSVRecorder(dir string, m Meta) *CSVRecorder {
	mmio.MakeDir(dir)
	return &CSVRecorder{dir: dir, meta: m}
}

// Close writes both tables
func (c *CSVRecorder) Close() error {
	csvw := mmio.NewCSVwriter(filepath.Join(c.dir, "fields.csv"))
	if err := csvw.WriteHead("who,xcor,ycor,owner-id,implements-WSA,owner-knows-WSA,yield,Year,TotalYearRainfall"); err != nil {
		csvw.Close()
		return fmt.Errorf("CSVRecorder.Close: %w", err)
	}
	err := writeFields(csvw, c.Rows)
	csvw.Close()
	if err != nil {
		return fmt.Errorf("CSVRecorder.Close fields.csv: %w", err)
	}

	sw := mmio.NewCSVwriter(filepath.Join(c.dir, "summary.csv"))
	defer sw.Close()
	if err := sw.WriteHead("FarmerID,Year,MeanXCor,MeanYCor,ImplementingWSA,KnowsWSA,TotalYield,NumberofFields,LeadFarmers,SocialScenario,ClimateScenario,UniqueID"); err != nil {
		return fmt.Errorf("CSVRecorder.Close: %w", err)
	}
	if err := writeSummary(sw, Summarise(c.Rows, c.meta)); err != nil {
		return fmt.Errorf("CSVRecorder.Close summary.csv: %w", err)
	}
	return nil
}

type lineWriter interface {
	WriteLine(data ...interface{}) error
}

func writeFields(w lineWriter, rows []Row) error {
	for i, r := range rows {
		if err := w.WriteLine(r.Who, r.Xcor, r.Ycor, r.OwnerID, b2f(r.ImplementsWSA), b2f(r.OwnerKnowsWSA), r.Yield, r.Year, r.TotalYearRainfall); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

func writeSummary(w lineWriter, ss []Summary) error {
	for i, s := range ss {
		if err := w.WriteLine(s.FarmerID, s.Year, s.MeanXCor, s.MeanYCor, s.ImplementingWSA, s.KnowsWSA, s.TotalYield, s.NumberofFields, s.LeadFarmers, s.SocialScenario, s.ClimateScenario, s.UniqueID); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

var (
	_ Recorder = (*Table)(nil)
	_ Recorder = (*CSVRecorder)(nil)
)
