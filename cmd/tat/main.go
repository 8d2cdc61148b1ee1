package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.0.0"

var rootCmd = &cobra.Command{
	Use:   "tat",
	Short: "Couples a daily ecohydrology model to a farmer adoption model",
	Long: `tat runs a cellular ecohydrology model of farm plots (radiation, PET,
stochastic rainfall, soil moisture, vegetation) through dry canicula and
growing seasons, and feeds yearly yields to a farmer decision model deciding
who practises soil and water conservation the following year.
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "run configuration (yaml)")
	rootCmd.AddCommand(cmdRun())
	rootCmd.AddCommand(cmdYear())
	rootCmd.AddCommand(cmdVersion())
}

func cmdVersion() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the binary version",
		Run: func(_ *cobra.Command, _ []string) {
			println(version)
		},
	}
}
