// rebartab-query — non-interactive lookups against the rebartab
// catalogue, for shell pipelines and quick checks.
//
// Usage:
//
//	rebartab-query <command> [flags]
//
// Commands:
//
//	bars      List the rebar reference table
//	systems   List the prestressing systems
//	anchors   Show the anchorages for one bar
//	version   Print version information
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/engtools/rebartab/internal/refstore"
	"github.com/engtools/rebartab/pkg/unitfmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var (
	dataDir    string
	jsonOutput bool

	// anchors flags
	anchorSystem      string
	anchorDesignation string
)

var rootCmd = &cobra.Command{
	Use:   "rebartab-query",
	Short: "Query the rebartab reinforcement catalogue",
	Long: `Non-interactive lookups against the rebar and prestressing
catalogue used by the rebartab TUI. Reads the same CSV files, or the
embedded defaults when no data directory is given.`,
	SilenceUsage: true,
}

var barsCmd = &cobra.Command{
	Use:   "bars",
	Short: "List the rebar reference table",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		bars, err := store.Bars()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(bars)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "BAR\tØ mm\tAREA mm²\tWEIGHT kg/m")
		for _, b := range bars {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%.3f\n",
				b.Name, unitfmt.Bare(b.DiameterMM), b.AreaMM2, b.WeightKgM)
		}
		return w.Flush()
	},
}

var systemsCmd = &cobra.Command{
	Use:   "systems",
	Short: "List the prestressing systems and their bars",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		systems, err := store.Systems()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(systems)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYSTEM\tBAR\tØ mm\tUTS\tBREAKING\tPROOF")
		for _, sys := range systems {
			bars, err := store.SystemBars(sys)
			if err != nil {
				return err
			}
			for _, b := range bars {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					b.System, b.Designation, unitfmt.Bare(b.DiameterMM),
					unitfmt.Strength(b.UltStrengthMPa),
					optLoad(b.BreakingLoadKN), optLoad(b.ProofLoadKN))
			}
		}
		return w.Flush()
	},
}

var anchorsCmd = &cobra.Command{
	Use:   "anchors",
	Short: "Show the anchorages for one prestressing bar",
	Example: `  rebartab-query anchors --system "Macalloy 1030" --designation 32mm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		anchors, err := store.Anchors(anchorSystem, anchorDesignation)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(anchors)
		}
		if len(anchors) == 0 {
			fmt.Printf("No anchorage data for %s %s.\n", anchorSystem, anchorDesignation)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tPLATE mm\tMIN SPACING mm\tMIN EDGE mm")
		for _, a := range anchors {
			fmt.Fprintf(w, "%s\t%s×%s\t%s\t%s\n",
				a.AnchorType,
				unitfmt.Bare(a.PlateWidthMM), unitfmt.Bare(a.PlateDepthMM),
				unitfmt.Bare(a.MinSpacingMM), unitfmt.Bare(a.MinEdgeDistMM))
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rebartab-query v%s (commit: %s)\n", Version, GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "",
		"Directory containing the catalogue CSV files (default: embedded catalogue)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Emit JSON instead of a table")

	anchorsCmd.Flags().StringVar(&anchorSystem, "system", "", "Prestressing system name (required)")
	anchorsCmd.Flags().StringVar(&anchorDesignation, "designation", "", "Bar designation, e.g. 32mm (required)")
	anchorsCmd.MarkFlagRequired("system")
	anchorsCmd.MarkFlagRequired("designation")

	rootCmd.AddCommand(barsCmd, systemsCmd, anchorsCmd, versionCmd)
}

// openStore opens the catalogue and fails loudly on any table the
// query surface cannot degrade around.
func openStore() (*refstore.RefService, error) {
	if dataDir == "" {
		dataDir = os.Getenv("REBARTAB_DATA_DIR")
	}

	store, err := refstore.Open(dataDir)
	if err != nil {
		return nil, err
	}

	// Unlike the TUI, a query command has no panel to degrade: report
	// table problems as warnings on stderr and keep going.
	report := store.Report()
	for _, st := range []refstore.TableStatus{report.Rebar, report.Bars, report.Anchors} {
		if !st.OK() {
			fmt.Fprintf(os.Stderr, "warning: %v\n", st.Err)
		}
		for _, re := range st.RowErrs {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", st.Path, re)
		}
	}
	return store, nil
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func optLoad(kn *float64) string {
	if kn == nil {
		return "—"
	}
	return unitfmt.Load(*kn)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
