package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"winlaunch/internal/deps"
	"winlaunch/internal/preflight"
)

type doctorReport struct {
	Checks   []preflight.Result `json:"checks"`
	Runtimes []deps.Status      `json:"runtimes"`
}

// failures counts blocking problems. Missing optional runtimes only warn.
func (r doctorReport) failures() int {
	failed := preflight.Failed(r.Checks)
	for _, s := range r.Runtimes {
		if !s.Available && !s.Optional {
			failed++
		}
	}
	return failed
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the settings database and runtime binaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := doctorReport{
				Checks:   preflight.RunAll(cmd.Context(), ctx.config),
				Runtimes: deps.CheckBinaries(deps.RuntimeRequirements()),
			}

			if jsonOut {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				report.render(newDoctorWriter(cmd.OutOrStdout()))
			}
			if failed := report.failures(); failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
	addJSONFlag(cmd, &jsonOut)
	return cmd
}

type checkState int

const (
	checkPassed checkState = iota
	checkWarning
	checkFailed
)

var checkStyles = map[checkState]struct {
	label  string
	colors text.Colors
}{
	checkPassed:  {"ok", text.Colors{text.FgGreen}},
	checkWarning: {"WARN", text.Colors{text.FgYellow}},
	checkFailed:  {"FAIL", text.Colors{text.FgRed, text.Bold}},
}

// doctorWriter prints doctor sections, colouring state labels on terminals.
type doctorWriter struct {
	out   io.Writer
	color bool
}

func newDoctorWriter(out io.Writer) doctorWriter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return doctorWriter{out: out, color: color}
}

func (w doctorWriter) section(title string) {
	heading := title
	if w.color {
		heading = text.Colors{text.Bold}.Sprint(title)
	}
	fmt.Fprintf(w.out, "%s\n%s\n", heading, strings.Repeat("-", len(title)))
}

func (w doctorWriter) check(name string, state checkState, detail string) {
	style := checkStyles[state]
	label := fmt.Sprintf("%-4s", style.label)
	if w.color {
		label = style.colors.Sprint(label)
	}
	fmt.Fprintf(w.out, "  %s  %s: %s\n", label, name, detail)
}

func (r doctorReport) render(w doctorWriter) {
	w.section("Environment")
	for _, c := range r.Checks {
		state := checkPassed
		if !c.Passed {
			state = checkFailed
		}
		w.check(c.Name, state, c.Detail)
	}

	fmt.Fprintln(w.out)
	w.section("Runtimes")
	for _, s := range r.Runtimes {
		state := checkPassed
		switch {
		case s.Available:
		case s.Optional:
			state = checkWarning
		default:
			state = checkFailed
		}
		w.check(s.Name, state, s.Detail)
	}
}
