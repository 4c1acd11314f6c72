// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the black command-line tool: a bounded
// satisfiability checker for LTL and LTL+Past formulas.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/consensys/go-corset/pkg/logic"
	"github.com/consensys/go-corset/pkg/parser"
	"github.com/consensys/go-corset/pkg/sat"
	"github.com/consensys/go-corset/pkg/sat/dimacs"
	"github.com/consensys/go-corset/pkg/sat/naive"
	"github.com/consensys/go-corset/pkg/solver"
	"github.com/consensys/go-corset/pkg/util/collection/set"
	"github.com/consensys/go-corset/pkg/util/source"
	"github.com/consensys/go-corset/pkg/util/termio"
)

// Version is filled when building with make, but *not* when installing via
// "go install".
var Version string

// Exit codes of runSolve: the verdict (solver and backend errors are reported
// as Unknown), or exitUsageOrParse for usage, input-read and syntax errors.
// A command line that cobra itself rejects exits with 1 (see Execute).
const (
	exitSat          = 0
	exitUnsat        = 1
	exitUnknown      = 2
	exitUsageOrParse = 3
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "black",
	Short: "A bounded satisfiability checker for LTL and LTL+Past.",
	Long:  "black checks bounded satisfiability of LTL/LTL+Past formulas via an incremental propositional unraveling.",
	Run:   runSolve,
}

// newRegistry wires up the backends this module ships. It is constructed
// fresh per invocation -- never a package-level global -- per the
// explicit-state discipline a BackendRegistry is held to.
func newRegistry() *sat.Registry {
	registry := sat.NewRegistry()
	registry.Register("naive", naive.New)

	return registry
}

func runSolve(cmd *cobra.Command, _ []string) {
	if GetFlag(cmd, "version") {
		printVersion()
		return
	}

	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}

	file, ok := readInput(cmd)
	if !ok {
		os.Exit(exitUsageOrParse)
	}

	alphabet := logic.NewAlphabet()

	var syntaxErrors []*source.SyntaxError

	formula, flags, ok := parser.Parse(file, alphabet, func(e *source.SyntaxError) {
		syntaxErrors = append(syntaxErrors, e)
	})

	if !ok {
		for _, e := range syntaxErrors {
			fmt.Println(e.Error())
		}

		os.Exit(exitUsageOrParse)
	}

	if GetFlag(cmd, "dimacs") {
		runDimacs(formula, flags)
		return
	}

	backendName := GetString(cmd, "sat-backend")
	removePast := GetFlag(cmd, "remove-past")
	bound := GetUint(cmd, "bound")

	s, err := solver.New(alphabet, newRegistry(), backendName)
	if err != nil {
		fmt.Println(err)
		os.Exit(exitUsageOrParse)
	}

	if err := s.AssertFormula(formula, flags, removePast); err != nil {
		fmt.Println(err)
		os.Exit(exitUnknown)
	}

	verdict, model, err := s.Solve(context.Background(), bound)
	if err != nil {
		fmt.Println(err)
		os.Exit(exitUnknown)
	}

	fmt.Println(verdict.String())

	if verdict == sat.Sat && model != nil && GetFlag(cmd, "print-model") {
		printModel(model, formula)
	}

	os.Exit(exitCode(verdict))
}

// runDimacs bypasses the normal/closure/encoder/solver pipeline entirely:
// it is only ever meaningful for a purely propositional formula, since the
// DIMACS backend has no notion of bounded unraveling.
func runDimacs(formula logic.Formula, flags parser.FeatureFlags) {
	if flags.Has(parser.Temporal) || flags.Has(parser.Quantifiers) {
		fmt.Println("black: --dimacs requires a purely propositional formula")
		os.Exit(exitUsageOrParse)
	}

	backend := dimacs.New(os.Stdout)
	backend.Assert(formula)

	if _, err := backend.Solve(); err != nil {
		fmt.Println(err)
		os.Exit(exitUnknown)
	}
}

func exitCode(v sat.Verdict) int {
	switch v {
	case sat.Sat:
		return exitSat
	case sat.Unsat:
		return exitUnsat
	default:
		return exitUnknown
	}
}

func readInput(cmd *cobra.Command) (*source.File, bool) {
	if filename := GetString(cmd, "filename"); filename != "" {
		bytes, err := os.ReadFile(filename)
		if err != nil {
			fmt.Println(err)
			return nil, false
		}

		return source.NewSourceFile(filename, bytes), true
	}

	if formula := GetString(cmd, "formula"); formula != "" {
		return source.NewSourceFile("<formula>", []byte(formula)), true
	}

	fmt.Println("black: one of --formula or --filename is required")

	return nil, false
}

// printModel renders one FormattedTable per time step, each row holding a
// proposition/atom mentioned in the original (pre-rewriting) formula and
// its truth value at that step.
func printModel(model *solver.Model, original logic.Formula) {
	props := collectPropositions(original)
	useColour := term.IsTerminal(int(os.Stdout.Fd()))
	loop := model.Loop()

	for step := uint(0); step < model.Size(); step++ {
		label := fmt.Sprintf("Time step: %d", step)
		if loop.HasValue() && step == loop.Unwrap() {
			label += " (loop entry)"
		}

		fmt.Println(label)

		table := termio.NewFormattedTable(2, uint(len(props)))

		for i, p := range props {
			table.SetRow(uint(i),
				termio.NewFormattedText(p.String(), termio.NewAnsiEscape()),
				termio.NewFormattedText(valueString(model.Value(p, step)), termio.NewAnsiEscape()))
		}

		table.Print(useColour)
	}
}

func valueString(v sat.TriBool) string {
	switch v {
	case sat.True:
		return "true"
	case sat.False:
		return "false"
	default:
		return "undef"
	}
}

// collectPropositions walks a formula's structure and returns the distinct
// propositions/atoms it mentions, in first-occurrence order.
func collectPropositions(f logic.Formula) []logic.Formula {
	var (
		seen  = set.NewSortedSet[uint64]()
		props []logic.Formula
	)

	var walk func(logic.Formula)

	walk = func(g logic.Formula) {
		switch g.Kind() {
		case logic.KindBoolean:
			return
		case logic.KindProposition, logic.KindAtom:
			if seen.Contains(g.UniqueID()) {
				return
			}

			seen.Insert(g.UniqueID())
			props = append(props, g)
		case logic.KindUnary:
			walk(g.Operand())
		case logic.KindBinary:
			walk(g.Left())
			walk(g.Right())
		case logic.KindQuantifier:
			walk(g.Matrix())
		}
	}

	walk(f)

	return props
}

func printVersion() {
	fmt.Print("black ")

	if Version != "" {
		fmt.Printf("%s", Version)
	} else if info, ok := debug.ReadBuildInfo(); ok {
		fmt.Printf("%s", info.Main.Version)
	} else {
		fmt.Printf("(unknown version)")
	}

	fmt.Println()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("formula", "", "the formula to check, given directly on the command line")
	rootCmd.PersistentFlags().String("filename", "", "read the formula from a file instead of --formula")
	rootCmd.PersistentFlags().Uint("bound", 10, "maximum unraveling depth to search before returning UNKNOWN")
	rootCmd.PersistentFlags().String("sat-backend", "naive", "propositional backend to drive the search with")
	rootCmd.PersistentFlags().Bool("remove-past", false,
		"eliminate past operators before encoding, even if none were parsed")
	rootCmd.PersistentFlags().Bool("print-model", false, "print a satisfying model's per-step proposition values")
	rootCmd.PersistentFlags().Bool("dimacs", false,
		"write the formula's CNF encoding in DIMACS format instead of solving")
}
