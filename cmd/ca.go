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

	"github.com/telepair/ca-core/engine/cellularautomaton"
	"github.com/telepair/ca-core/pkg/ui"
)

// caCmd represents the 1-D Wolfram cellular automaton command
var caCmd = &cobra.Command{
	Use:   "ca",
	Short: "Run a 1-D Wolfram cellular automaton simulation",
	Long: `Run a 1-D Wolfram cellular automaton, rendered as a scrolling
history of rows: each row is one generation, driven by the rule's 2-D
reinterpretation under the real Life-family engine (see engine/rule), so a
live cell never dies and the pattern only ever grows downward.

Example rules:
- Rule 30: Chaotic pattern generator
- Rule 90: Sierpinski triangle pattern
- Rule 110: Complex patterns (proven to be Turing complete)
- Rule 184: Traffic flow simulation`,
	Run: func(cmd *cobra.Command, _ []string) {
		InitLog()

		ctx := context.Background()
		InitProfile(ctx)

		rule, _ := cmd.Flags().GetInt("rule")
		if rule < 0 || rule > 254 || rule%2 != 0 {
			slog.Error("Wolfram rule must be even and in [0,254]", "rule", rule)
			return
		}

		ca := cellularautomaton.New(
			rule,
			max(ui.DefaultHeight, 1),
			max(ui.DefaultWidth, 1),
		)

		if err := ui.RunModel("Cellular Automaton", ca, lang, refreshInterval); err != nil {
			slog.Error("Failed to run cellular automaton", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(caCmd)

	caCmd.Flags().Int("rule", 30, "Wolfram rule number (even, 0-254)")
}
