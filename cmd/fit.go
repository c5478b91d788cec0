package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/fit"
	"github.com/oakwood-commons/tagline/internal/measure"
	"github.com/oakwood-commons/tagline/internal/tagrow"
)

var (
	fitFlags  = rowFlags{size: badge.DefaultVariant}
	fitWidths string
	fitPlus1  int
	fitPlus2  int
	fitWidth  int
	fitOutput string
)

// fitReport is the machine-readable outcome of the fit command.
type fitReport struct {
	Labels    []string   `json:"labels" yaml:"labels" toml:"labels"`
	Metrics   string     `json:"metrics" yaml:"metrics" toml:"metrics"`
	Size      string     `json:"size" yaml:"size" toml:"size"`
	Available int        `json:"available" yaml:"available" toml:"available"`
	Gap       int        `json:"gap" yaml:"gap" toml:"gap"`
	Widths    []int      `json:"widths" yaml:"widths" toml:"widths"`
	Plus1     int        `json:"plus1" yaml:"plus1" toml:"plus1"`
	Plus2     int        `json:"plus2" yaml:"plus2" toml:"plus2"`
	Result    fit.Result `json:"result" yaml:"result" toml:"result"`
	Overflow  string     `json:"overflow,omitempty" yaml:"overflow,omitempty" toml:"overflow,omitempty"`
	RowWidth  int        `json:"row_width" yaml:"row_width" toml:"row_width"`
}

const metricsFixed = "fixed"

func parseWidths(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: %w", p, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid width %d: must be non-negative", n)
		}
		out = append(out, n)
	}
	return out, nil
}

func runFit(cmd *cobra.Command, args []string) error {
	switch fitOutput {
	case "text", "json", "yaml", "toml":
	default:
		return fmt.Errorf("invalid --output %q (expected text, json, yaml or toml)", fitOutput)
	}
	cfg, err := loadMergedConfig(configFile)
	if err != nil {
		return err
	}
	rs, err := resolveRowSettings(cmd, cfg, &fitFlags)
	if err != nil {
		return err
	}

	rep := fitReport{Size: string(rs.Variant), Gap: rs.Gap}
	var m measure.Measurement

	if flagChanged(cmd, "widths") {
		widths, err := parseWidths(fitWidths)
		if err != nil {
			return err
		}
		if len(widths) == 0 {
			return fmt.Errorf("--widths needs at least one width")
		}
		labels := []string{}
		if len(args) > 0 {
			labels = tagrow.ProcessLabels(args, rs.Fallback)
			if len(labels) != len(widths) {
				return fmt.Errorf("got %d labels but %d widths", len(labels), len(widths))
			}
		}
		if fitPlus1 < 0 || fitPlus2 < 0 {
			return fmt.Errorf("--plus1 and --plus2 must be non-negative")
		}
		plus2 := fitPlus2
		if plus2 == 0 {
			plus2 = fitPlus1
		}
		m = measure.Measurement{Widths: widths, Plus1: fitPlus1, Plus2: plus2}
		rep.Labels = labels
		rep.Metrics = metricsFixed
	} else {
		labels := tagrow.ProcessLabels(args, rs.Fallback)
		p, err := rs.provider()
		if err != nil {
			return err
		}
		var ok bool
		if m, ok = measure.All(p, labels, rs.Variant); !ok {
			return fmt.Errorf("labels could not be measured with the %s backend", rs.Metrics)
		}
		rep.Labels = labels
		rep.Metrics = rs.Metrics
	}

	available := fitWidth
	if available <= 0 {
		if rep.Metrics == measure.BackendPixel || rep.Metrics == metricsFixed {
			return fmt.Errorf("--width is required with %s widths", rep.Metrics)
		}
		available, _ = detectTerminalSize()
	}

	in := m.Input(available, rs.Gap, rs.MinVisible)
	res := fit.Calculate(in)
	rep.Available = available
	rep.Widths = m.Widths
	rep.Plus1, rep.Plus2 = m.Plus1, m.Plus2
	rep.Result = res
	rep.Overflow = res.Overflow()
	rep.RowWidth = fit.Width(in, res)
	runLogger().V(1).Info("fit computed", "available", available, "visible", res.Visible, "hidden", res.Hidden)

	return writeFitReport(cmd.OutOrStdout(), rep, fitOutput)
}

func writeFitReport(w io.Writer, rep fitReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(rep)
	}

	shown := make([]string, 0, rep.Result.Visible+1)
	for i := 0; i < rep.Result.Visible && i < len(rep.Labels); i++ {
		shown = append(shown, rep.Labels[i])
	}
	if rep.Overflow != "" {
		shown = append(shown, rep.Overflow)
	}
	if len(shown) > 0 {
		if _, err := fmt.Fprintln(w, strings.Join(shown, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "visible %d, hidden %d, row width %d of %d\n",
		rep.Result.Visible, rep.Result.Hidden, rep.RowWidth, rep.Available)
	return err
}

var fitCmd = &cobra.Command{
	Use:   "fit [labels...]",
	Short: "Compute how many labels fit in a width",
	Long: `fit runs the label fit for one row and prints the result.

Labels are measured with the chosen backend, or widths are given directly
with --widths (one per label, in display order) and --plus1/--plus2 for the
overflow badge.`,
	Example: "\n  tagline fit Full-time Remote Senior Go --width 30\n  tagline fit --widths 70,60,55 --plus1 30 --plus2 38 --width 200 -o json\n  tagline fit --metrics pixel --width 180 Full-time Remote Senior\n",
	RunE:    runFit,
}

func init() { //nolint:gochecknoinits
	addRowFlags(fitCmd, &fitFlags, "measurement backend: cell|rune|pixel")
	fitCmd.Flags().StringVar(&fitWidths, "widths", "", "comma-separated label widths; skips measurement")
	fitCmd.Flags().IntVar(&fitPlus1, "plus1", 0, "overflow badge width for 1-9 hidden labels (with --widths)")
	fitCmd.Flags().IntVar(&fitPlus2, "plus2", 0, "overflow badge width for 10+ hidden labels (with --widths; default --plus1)")
	fitCmd.Flags().IntVar(&fitWidth, "width", 0, "available width (default: terminal width; required for pixel or --widths)")
	fitCmd.Flags().StringVarP(&fitOutput, "output", "o", "text", "output format: text|json|yaml|toml")
}
