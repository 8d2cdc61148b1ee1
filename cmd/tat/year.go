package main

import (
	"fmt"
	"path/filepath"

	"github.com/maseology/mmio"
	"github.com/spf13/cobra"

	"github.com/WylieMabel/TreesAndThat/ecohyd"
	"github.com/WylieMabel/TreesAndThat/grid"
)

func cmdYear() *cobra.Command {
	c := &cobra.Command{
		Use:   "year",
		Short: "Run the ecohydrology model alone for a number of years",
		Long: `Run annual loops of the ecohydrology model on a uniform adoption mask
and write the daily records to daily.csv in the output directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			wsa, _ := cmd.Flags().GetBool("wsa")
			n, _ := cmd.Flags().GetInt("years")

			tt := mmio.NewTimer()
			eco, err := ecohyd.New(cfg.Ecohyd, ecohyd.WithLogger(log))
			if err != nil {
				return err
			}
			clim, err := loadClimate(cfg)
			if err != nil {
				return err
			}
			mask := make([]bool, eco.Grid().NumCells())
			for i := range mask {
				mask[i] = wsa
			}
			for yr := 0; yr < n; yr++ {
				avg, tmax, tmin, err := clim.Year(yr%clim.Years(), cfg.Run.TempShift)
				if err != nil {
					return err
				}
				h, err := eco.Stepper(mask, avg, tmax, tmin)
				if err != nil {
					return err
				}
				fmt.Printf(" year %d: rainfall %.1f mm, soil health %.3f\n", yr+1, h.Stats.Rainfall, eco.Grid().SoilHealth[0])
			}
			tt.Lap("simulation complete")

			mmio.MakeDir(cfg.Output)
			csvw := mmio.NewCSVwriter(filepath.Join(cfg.Output, "daily.csv"))
			defer csvw.Close()
			if err := csvw.WriteHead("year,day,julian,time,regime,phase,rain,sat_wsa,sat_nowsa,bio_wsa,bio_nowsa,pet30_wsa,pet30_nowsa,grass,bare,covercrop"); err != nil {
				return err
			}
			if err := writeDaily(csvw, eco.History()); err != nil {
				return fmt.Errorf("daily.csv: %w", err)
			}
			return nil
		},
	}
	c.Flags().Bool("wsa", true, "every plot practises WSA")
	c.Flags().IntP("years", "n", 1, "annual loops to run")
	return c
}

type lineWriter interface {
	WriteLine(data ...interface{}) error
}

func writeDaily(w lineWriter, days []ecohyd.DayRecord) error {
	for _, d := range days {
		if err := w.WriteLine(d.Year, d.Day, d.Julian, d.Time, d.Regime.String(), d.Phase.String(), d.Rain,
			d.Saturation.WSA, d.Saturation.NoWSA, d.Biomass.WSA, d.Biomass.NoWSA, d.PET30.WSA, d.PET30.NoWSA,
			d.PFT[grid.Grass], d.PFT[grid.Bare], d.PFT[grid.CoverCrop]); err != nil {
			return fmt.Errorf("year %d day %d: %w", d.Year, d.Day, err)
		}
	}
	return nil
}
