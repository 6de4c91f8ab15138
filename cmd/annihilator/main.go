// annihilator is a wave brick breaker for the terminal and the desktop.
//
// Usage:
//
//	annihilator list              - List available modes
//	annihilator play [mode]       - Play in the terminal (picker if no mode)
//	annihilator menu              - Start the mode picker
//	annihilator window [mode]     - Play in a desktop window
//	annihilator serve             - Start SSH server for remote play
//	annihilator scores [mode]     - Show best waves and recent runs
//	annihilator inspect <file>    - Show a saved dump or a level file
//
// Global flags:
//
//	--fps <rate>          - Tick rate (default: 30)
//	--seed <value>        - RNG seed for reproducible waves
//	--db <path>           - Database path (default: ~/.annihilator/scores.db)
//	--config <path>       - Custom annihilator.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--levels <path>       - Level directory or file for the levels mode
//	--sound               - Play sound effects
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the modes
	_ "github.com/vovakirdan/concrete-annihilator/internal/games/annihilator"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagSound      bool
	flagVolume     float64
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "annihilator",
	Short: "Concrete Annihilator - survive a maximum of waves",
	Long: `Concrete Annihilator is a wave brick breaker. Aim, launch a volley of
balls and break the bricks before they cross the red line.

Available commands:
  list     - Show all available modes
  play     - Play in the terminal
  menu     - Interactive mode picker
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View best waves and recent runs
  inspect  - Show a saved dump or a level file

Examples:
  annihilator play
  annihilator play annihilator_levels --levels ./levels
  annihilator window --sound
  annihilator serve --ssh :2222
  annihilator scores annihilator`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return applySettings()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (simulation steps per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.annihilator/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom annihilator.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevels, "levels", "", "Level directory, or a single level file, for the levels mode")
	pf.BoolVar(&flagSound, "sound", false, "Play sound effects")
	pf.Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
	pf.StringVar(&flagLogFile, "log-file", "~/.annihilator/annihilator.log", "Log file used while the terminal UI runs")
	pf.BoolVar(&flagVerbose, "verbose", false, "Log debug messages")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(inspectCmd)
}
