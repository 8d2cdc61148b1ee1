// Package climate reads historical daily temperatures and serves them one
// simulation year at a time.
package climate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/maseology/mmio"

	"github.com/WylieMabel/TreesAndThat/season"
)

var (
	ErrIncompleteYear = errors.New("climate year does not hold a full year of days")
	ErrYearRange      = errors.New("climate year out of range")
)

var layouts = []string{"2006-01-02", "2006-01-02 15:04:05", "1/2/2006"}

// Table daily temperatures [°C] per year, counted from the earliest record
type Table struct {
	First         int         // calendar year of Avg[0]
	Avg, Max, Min [][]float64 // [year][day]
}

// Constant builds a table of identical years
func Constant(years int, avg, tmax, tmin float64) *Table {
	t := &Table{}
	for i := 0; i < years; i++ {
		a, x, n := make([]float64, season.DaysPerYear), make([]float64, season.DaysPerYear), make([]float64, season.DaysPerYear)
		for d := range a {
			a[d], x[d], n[d] = avg, tmax, tmin
		}
		t.Avg, t.Max, t.Min = append(t.Avg, a), append(t.Max, x), append(t.Min, n)
	}
	return t
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, l := range layouts {
		var dt time.Time
		if dt, err = time.Parse(l, s); err == nil {
			return dt, nil
		}
	}
	return time.Time{}, err
}

// Load reads a dt,AverageTemperature,MaxTemperature,MinTemperature csv with
// one header line and keeps the first n years. Records past day 365 of a
// leap year are dropped.
func Load(fp string, n int) (*Table, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("climate.Load: file %s does not exist", fp)
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("climate.Load failed: %v", err)
	}
	defer f.Close()
	return read(f, n)
}

func read(r io.Reader, n int) (*Table, error) {
	recs := make([][]string, 0, 366*n)
	for rec := range mmio.LoadCSV(r, 1) {
		recs = append(recs, rec)
	}

	type day struct{ a, x, n float64 }
	byYear, first := make(map[int][]day), 0
	for i, rec := range recs {
		irec := i + 1
		if len(rec) < 4 {
			return nil, fmt.Errorf("climate.Load: record %d has %d columns, want 4", irec, len(rec))
		}
		dt, err := parseDate(rec[0])
		if err != nil {
			return nil, fmt.Errorf("climate.Load: record %d: %v", irec, err)
		}
		var d day
		for k, p := range []*float64{&d.a, &d.x, &d.n} {
			if *p, err = strconv.ParseFloat(strings.TrimSpace(rec[k+1]), 64); err != nil {
				return nil, fmt.Errorf("climate.Load: record %d: %v", irec, err)
			}
		}
		if len(byYear) == 0 {
			first = dt.Year()
		}
		byYear[dt.Year()] = append(byYear[dt.Year()], d)
	}

	t := &Table{First: first}
	for i := 0; i < n; i++ {
		ds := byYear[first+i]
		if len(ds) > season.DaysPerYear {
			ds = ds[:season.DaysPerYear]
		}
		if len(ds) != season.DaysPerYear {
			return nil, fmt.Errorf("%w: %d has %d days", ErrIncompleteYear, first+i, len(ds))
		}
		a, x, m := make([]float64, len(ds)), make([]float64, len(ds)), make([]float64, len(ds))
		for j, d := range ds {
			a[j], x[j], m[j] = d.a, d.x, d.n
		}
		t.Avg, t.Max, t.Min = append(t.Avg, a), append(t.Max, x), append(t.Min, m)
	}
	return t, nil
}

// Years number of years held
func (t *Table) Years() int { return len(t.Avg) }

// Year returns copies of year i's temperatures shifted by shift [°C]
func (t *Table) Year(i int, shift float64) (avg, tmax, tmin []float64, err error) {
	if i < 0 || i >= len(t.Avg) {
		return nil, nil, nil, fmt.Errorf("%w: %d of %d", ErrYearRange, i, len(t.Avg))
	}
	sh := func(v []float64) []float64 {
		o := make([]float64, len(v))
		for j, x := range v {
			o[j] = x + shift
		}
		return o
	}
	return sh(t.Avg[i]), sh(t.Max[i]), sh(t.Min[i]), nil
}
