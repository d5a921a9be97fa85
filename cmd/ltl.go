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

// ltlCmd represents the Larger-Than-Life command
var ltlCmd = &cobra.Command{
	Use:   "ltl",
	Short: "Run a Larger-Than-Life multi-state simulation",
	Long: `Run a Larger-Than-Life cellular automaton: a generalisation of
Life with a configurable neighbourhood radius, birth/survival ranges given
as neighbour-count ranges rather than single counts, an optional
neighbourhood shape (Moore/von Neumann/circular), and an optional history
decay ("C" states) that fades a cell through intermediate colours after it
dies instead of going straight to black.

Rule syntax: R<range>,C<states>,M<0|1>,S<min>..<max>,B<min>..<max>,N<M|N|C>
A ':'-prefixed topology suffix (":T200,200" for a 200x200 torus, ":P100,80"
for a bounded plane, ...) bounds the grid; omitting it runs on an
unbounded, auto-growing grid.

Example rules:
- R1,C0,M1,S3..4,B3..3,NM  (Conway's own Life re-expressed in LtL notation)
- R5,C0,M1,S33..57,B34..45,NM  (a classic "bugs" rule)

A YAML scenario file (--config) can supply the rule and refresh rate
instead of passing them as flags.`,
	Run: func(cmd *cobra.Command, _ []string) {
		InitLog()

		ctx := context.Background()
		InitProfile(ctx)

		ruleString, _ := cmd.Flags().GetString("rule")
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

		view, err := automaton.NewView(
			ruleString,
			max(rows, 1),
			max(cols, 1),
			automaton.Config{},
		)
		if err != nil {
			slog.Error("Failed to compile rule", "rule", ruleString, "error", err)
			return
		}

		if err := ui.RunModel("Larger-Than-Life", view, lang, refresh); err != nil {
			slog.Error("Failed to run ltl", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(ltlCmd)

	ltlCmd.Flags().String("rule", "R5,C0,M1,S33..57,B34..45,NM", "Larger-Than-Life rule string, optionally with a topology suffix")
	ltlCmd.Flags().String("config", "", "YAML scenario file supplying the rule (overrides --rule)")
}
