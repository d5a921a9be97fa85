/*
Copyright © 2025 Liys <liys87x@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/telepair/ca-core/engine/automaton"
	"github.com/telepair/ca-core/pkg/ui"
)

// lifeCmd represents the Conway's Game of Life (and rule-string variant) command
var lifeCmd = &cobra.Command{
	Use:   "life",
	Short: "Run a 2-state Moore-neighbourhood Life-family simulation",
	Long: `Run a 2-state Life-family cellular automaton, the B3/S23 Game of
Life John Conway devised and any of its many relatives addressable by the
same birth/survival notation (B36/S23 HighLife, B2/S23, ...), on QuickLife's
unbounded hierarchical grid. Each run seeds a random soup; press "n" to
reseed. A YAML scenario file (--config) can supply the rule and refresh
rate instead of passing them as flags.

Rules:
1. Any live cell with a neighbour count in the survival set stays alive
2. Any dead cell with a neighbour count in the birth set is born
3. Every other cell dies or stays dead`,
	Run: func(cmd *cobra.Command, _ []string) {
		InitLog()

		ctx := context.Background()
		InitProfile(ctx)

		ruleString, _ := cmd.Flags().GetString("rule")
		aliveColor, _ := cmd.Flags().GetString("alive-color")
		deadColor, _ := cmd.Flags().GetString("dead-color")
		aliveChar, _ := cmd.Flags().GetString("alive-char")
		deadChar, _ := cmd.Flags().GetString("dead-char")
		configPath, _ := cmd.Flags().GetString("config")

		refresh := refreshInterval
		rows, cols := ui.DefaultHeight, ui.DefaultWidth
		if configPath != "" {
			scenario, err := automaton.LoadConfigFile(configPath)
			if err != nil {
				slog.Error("Failed to load scenario file", "path", configPath, "error", err)
				return
			}
			ruleString = scenario.Rule
			if scenario.RefreshMillis > 0 {
				refresh = scenario.RefreshDuration()
			}
			if scenario.GridHeight > 0 {
				rows = scenario.GridHeight
			}
			if scenario.GridWidth > 0 {
				cols = scenario.GridWidth
			}
		}

		cfg := automaton.Config{Appearance: automaton.Appearance{
			AliveColor: aliveColor,
			DeadColor:  deadColor,
			AliveChar:  []rune(aliveChar)[0],
			DeadChar:   []rune(deadChar)[0],
		}}

		view, err := automaton.NewView(
			ruleString,
			max(rows, 1),
			max(cols, 1),
			cfg,
		)
		if err != nil {
			slog.Error("Failed to compile rule", "rule", ruleString, "error", err)
			return
		}

		if err := ui.RunModel("Life", view, lang, refresh); err != nil {
			slog.Error("Failed to run life", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(lifeCmd)

	lifeCmd.Flags().String("rule", "B3/S23", "Life-family birth/survival rule string")
	lifeCmd.Flags().String("alive-char", "█", "Alive cell character")
	lifeCmd.Flags().String("dead-char", " ", "Dead cell character")
	lifeCmd.Flags().String("alive-color", "#00FF00", "Alive cell color (hex)")
	lifeCmd.Flags().String("dead-color", "#000000", "Dead cell color (hex)")
	lifeCmd.Flags().String("config", "", "YAML scenario file supplying the rule (overrides --rule)")
}
