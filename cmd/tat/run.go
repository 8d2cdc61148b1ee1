package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/WylieMabel/TreesAndThat/climate"
	"github.com/WylieMabel/TreesAndThat/config"
	"github.com/WylieMabel/TreesAndThat/coupling"
	"github.com/WylieMabel/TreesAndThat/ecohyd"
	"github.com/WylieMabel/TreesAndThat/logging"
	"github.com/WylieMabel/TreesAndThat/social"
)

func loadConfig(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	fp, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(fp)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logging.NewWithLevel(cfg.LogLevel), nil
}

func loadClimate(cfg config.Config) (*climate.Table, error) {
	n := cfg.Run.Years
	if n < 1 {
		n = 1
	}
	if cfg.ClimateCSV == "" {
		in := cfg.Ecohyd.Initial
		return climate.Constant(n, in.Tavg, in.Tmax, in.Tmin), nil
	}
	return climate.Load(cfg.ClimateCSV, n)
}

func cmdRun() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Run the coupled ecohydrology and farmer model",
		Long: `Spin the ecohydrology model up, then alternate one year of daily
ecohydrology with one farming year. Plot rows and the per-farmer summary are
written to the output directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			return run(cmd.Context(), cfg, log, !quiet)
		},
	}
	c.Flags().BoolP("quiet", "q", false, "no progress bar")
	return c
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger, progress bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	tt := mmio.NewTimer()
	defer tt.Lap("run complete")

	eco, err := ecohyd.New(cfg.Ecohyd, ecohyd.WithLogger(log))
	if err != nil {
		return err
	}
	vil, err := social.NewVillage(cfg.Social, log.With().Str("component", "social").Logger())
	if err != nil {
		return err
	}
	clim, err := loadClimate(cfg)
	if err != nil {
		return err
	}
	meta := coupling.NewMeta(cfg.Social.LeadFarmers, cfg.Social.Scenario, coupling.ClimateScenario(cfg.Ecohyd.Season))
	rec := coupling.NewCSVRecorder(cfg.Output, meta)
	d, err := coupling.NewDriver(eco, vil, clim, rec, cfg.Run, log)
	if err != nil {
		return err
	}
	fmt.Printf(" %s cells, %d spin-up years, %d years, run %s\n", mmio.Thousands(int64(eco.Grid().NumCells())), cfg.Run.SpinUp, cfg.Run.Years, meta.UniqueID)
	tt.Lap("model build complete")

	if progress && cfg.Run.Years > 0 {
		uiprogress.Start()
		bar := uiprogress.AddBar(cfg.Run.Years).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("year %d/%d", b.Current(), cfg.Run.Years)
		})
		d.OnYear = func(int, *ecohyd.Harvest) { bar.Incr() }
		defer uiprogress.Stop()
	}

	if err := d.Run(ctx); err != nil {
		return err
	}
	if err := rec.Close(); err != nil {
		return err
	}
	log.Info().Str("output", cfg.Output).Msg("results written")
	return nil
}
