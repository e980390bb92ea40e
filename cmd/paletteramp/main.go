package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/paletteramp"
	"github.com/jsvensson/paletteramp/internal/blend"
	"github.com/jsvensson/paletteramp/internal/color"
	"github.com/jsvensson/paletteramp/internal/format"
	"github.com/jsvensson/paletteramp/internal/ramp"
	"github.com/jsvensson/paletteramp/internal/validate"
)

var (
	flagFile        string
	flagRamp        []string
	flagSkip        []string
	flagRampBase    string
	flagFormat      string
	flagSteps       int
	flagTint        string
	flagTintOpacity float64
	flagTintMode    string
	flagNoTint      bool
	flagLock        []string
	flagUnlock      []int
	flagPreview     bool
	flagSwatches    bool
	flagStops       int
	flagCheck       bool
	flagForce       bool
	flagName        string
	flagBase        string
	flagVerbose     int
	version         = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "paletteramp",
	Short:   "Generate color ramps from a single HCL source file",
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(flagVerbose, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the color ramps of a ramp file",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate and normalize color values",
}

var validateHexCmd = &cobra.Command{
	Use:   "hex <value>",
	Short: "Validate a hex color",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd, validate.ValidateHexValue(args[0]))
	},
}

var validateHSLCmd = &cobra.Command{
	Use:   "hsl <h> <s> <l>",
	Short: "Validate HSL components",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd, validate.ValidateHSLValues(args[0], args[1], args[2]))
	},
}

var validateOKLCHCmd = &cobra.Command{
	Use:   "oklch <l> <c> <h>",
	Short: "Validate OKLCH components",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd, validate.ValidateOKLCHValues(args[0], args[1], args[2]))
	},
}

var validateColorCmd = &cobra.Command{
	Use:   "color <value>",
	Short: "Validate a color in any supported notation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(cmd, validate.ValidateColor(args[0]))
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format ramp files",
	Long:  "Format one or more ramp files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter ramp file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

var tracksCmd = &cobra.Command{
	Use:   "tracks <color>",
	Short: "Preview the hue, lightness and saturation tracks of a color",
	Args:  cobra.ExactArgs(1),
	RunE:  runTracks,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

// errInvalidInput makes main exit non-zero without printing a second message.
var errInvalidInput = errors.New("invalid input")

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "log verbosity (repeat for more)")

	generateCmd.Flags().StringVarP(&flagFile, "file", "f", "ramps.hcl", "path to ramp HCL file")
	generateCmd.Flags().StringArrayVar(&flagRamp, "ramp", nil, "generate only specific ramps (can be repeated)")
	generateCmd.Flags().StringVar(&flagFormat, "format", "", "override the output format (hex, hsl, rgb, oklch)")
	generateCmd.Flags().StringArrayVar(&flagSkip, "skip", nil, "leave out specific ramps (can be repeated)")
	generateCmd.Flags().StringVar(&flagRampBase, "base", "", "override the base color")
	generateCmd.Flags().IntVar(&flagSteps, "steps", 0, "override the step count")
	generateCmd.Flags().StringVar(&flagTint, "tint", "", "override the tint color")
	generateCmd.Flags().Float64Var(&flagTintOpacity, "tint-opacity", 50, "tint opacity (0-100), used with --tint")
	generateCmd.Flags().StringVar(&flagTintMode, "tint-mode", string(blend.Normal), "tint blend mode, used with --tint")
	generateCmd.Flags().BoolVar(&flagNoTint, "no-tint", false, "remove every tint")
	generateCmd.Flags().StringArrayVar(&flagLock, "lock", nil, "lock a step as INDEX=COLOR (can be repeated)")
	generateCmd.Flags().IntSliceVar(&flagUnlock, "unlock", nil, "unlock steps by index")
	generateCmd.Flags().BoolVarP(&flagPreview, "preview", "p", false, "render a swatch next to each color")
	generateCmd.Flags().BoolVar(&flagSwatches, "swatches", false, "mark locked steps")

	tracksCmd.Flags().IntVar(&flagStops, "stops", 12, "number of stops per track")

	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")

	initCmd.Flags().StringVar(&flagName, "name", "primary", "name of the starter ramp")
	initCmd.Flags().StringVar(&flagBase, "base", ramp.DefaultBaseColor, "base color of the starter ramp")
	initCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing file")

	validateCmd.AddCommand(validateHexCmd, validateHSLCmd, validateOKLCHCmd, validateColorCmd)
	rootCmd.AddCommand(generateCmd, validateCmd, fmtCmd, initCmd, tracksCmd, versionCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := paletteramp.Load(flagFile)
	if err != nil {
		return err
	}

	opts, err := generateOptions()
	if err != nil {
		return err
	}

	results, err := doc.Generate(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s:\n", r.Name)
		var swatches []ramp.Swatch
		if flagSwatches {
			swatches = r.Swatches()
		}
		for step, c := range r.Colors {
			line := fmt.Sprintf("  %2d %s", step, c)
			if flagPreview {
				line = fmt.Sprintf("  %2d %s %s", step, swatch(c), c)
			}
			if step < len(swatches) && swatches[step].Locked {
				line += " (locked)"
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

func generateOptions() (paletteramp.Options, error) {
	opts := paletteramp.Options{
		Ramps:  flagRamp,
		Skip:   flagSkip,
		Steps:  flagSteps,
		NoTint: flagNoTint,
		Unlock: flagUnlock,
	}
	if flagSteps < 0 {
		return opts, fmt.Errorf("--steps must be positive, got %d", flagSteps)
	}

	if flagRampBase != "" {
		base, err := validate.ValidateColor(flagRampBase).Color()
		if err != nil {
			return opts, fmt.Errorf("--base: %w", err)
		}
		opts.Base = &base
	}

	var err error
	if flagFormat != "" {
		if opts.Format, err = color.ParseFormat(flagFormat); err != nil {
			return opts, err
		}
	}

	if flagTint != "" {
		c, err := validate.ValidateColor(flagTint).Color()
		if err != nil {
			return opts, fmt.Errorf("--tint: %w", err)
		}
		mode, ok := blend.ParseMode(flagTintMode)
		if !ok {
			return opts, fmt.Errorf("--tint-mode: unknown blend mode %q", flagTintMode)
		}
		if flagTintOpacity < 0 || flagTintOpacity > 100 {
			return opts, fmt.Errorf("--tint-opacity must be between 0 and 100, got %g", flagTintOpacity)
		}
		opts.Tint = &ramp.Tint{Color: c, Opacity: flagTintOpacity, Mode: mode}
	}

	for _, lock := range flagLock {
		index, value, ok := strings.Cut(lock, "=")
		if !ok {
			return opts, fmt.Errorf("--lock %q: want INDEX=COLOR", lock)
		}
		i, err := strconv.Atoi(strings.TrimSpace(index))
		if err != nil {
			return opts, fmt.Errorf("--lock %q: bad index: %w", lock, err)
		}
		r := validate.ValidateColor(value)
		if !r.IsValid {
			return opts, fmt.Errorf("--lock %q: %s", lock, r.Error)
		}
		if opts.Locks == nil {
			opts.Locks = make(map[int]string)
		}
		opts.Locks[i] = r.FormattedColor
	}
	return opts, nil
}

func runTracks(cmd *cobra.Command, args []string) error {
	base, err := validate.ValidateColor(args[0]).Color()
	if err != nil {
		return err
	}
	if flagStops < 2 {
		return fmt.Errorf("--stops must be at least 2, got %d", flagStops)
	}

	e := ramp.NewEngine()
	tracks := []struct {
		name   string
		colors []color.Color
	}{
		{"hue", e.HueTrack(base, flagStops)},
		{"lightness", e.LightnessTrack(base, flagStops)},
		{"saturation", e.SaturationTrack(base, flagStops)},
	}

	out := cmd.OutOrStdout()
	for _, t := range tracks {
		var row, values strings.Builder
		for i, c := range t.colors {
			row.WriteString(swatch(c.Hex()))
			if i > 0 {
				values.WriteByte(' ')
			}
			values.WriteString(c.Hex())
		}
		fmt.Fprintf(out, "%-10s %s\n", t.name, row.String())
		fmt.Fprintf(out, "%-10s %s\n", "", values.String())
	}
	return nil
}

// swatch renders a two-cell block in the given color. Values that do not
// parse render as blank cells.
func swatch(value string) string {
	c, err := color.Parse(value)
	if err != nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

func report(cmd *cobra.Command, r validate.Result) error {
	if !r.IsValid {
		fmt.Fprintln(cmd.ErrOrStderr(), r.Error)
		return errInvalidInput
	}
	fmt.Fprintln(cmd.OutOrStdout(), r.FormattedColor)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		return errInvalidInput
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "ramps.hcl"
	if len(args) == 1 {
		path = args[0]
	}

	base, err := validate.ValidateColor(flagBase).Color()
	if err != nil {
		return fmt.Errorf("base color %q: %w", flagBase, err)
	}
	name := strings.TrimSpace(flagName)
	if name == "" {
		return errors.New("ramp name must not be empty")
	}

	if !flagForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, format.Scaffold(name, base), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errInvalidInput) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
