package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alexanderramin/spelltree/internal/cli/formatter"
	"github.com/alexanderramin/spelltree/internal/config"
	"github.com/alexanderramin/spelltree/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage build config files",
	}
	cmd.AddCommand(newConfigInitCmd(a))
	return cmd
}

func newConfigInitCmd(a *App) *cobra.Command {
	var output, format string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a build config file; asks for values on a terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, path, err := configTarget(output, format)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			cfg := domain.DefaultBuildConfig()
			if a.interactive() {
				values := newConfigFormValues(cfg)
				if err := configForm(values).Run(); err != nil {
					return err
				}
				if err := values.apply(&cfg); err != nil {
					return err
				}
			}

			if err := config.WriteBuildConfig(path, cfg, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Config file to write (default spelltree.json or spelltree.yaml)")
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from the file extension)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

// configTarget settles the format and path from the two optional flags.
func configTarget(output, format string) (config.Format, string, error) {
	var f config.Format
	switch strings.ToLower(format) {
	case "":
		f = config.FormatFromPath(output)
	case "json":
		f = config.FormatJSON
	case "yaml", "yml":
		f = config.FormatYAML
	default:
		return "", "", fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
	if output == "" {
		output = "spelltree.json"
		if f == config.FormatYAML {
			output = "spelltree.yaml"
		}
	}
	return f, output, nil
}

// configFormValues holds the form's text fields; huh inputs edit strings.
type configFormValues struct {
	MaxChildren   string
	TopThemes     string
	Density       string
	Symmetry      string
	Chaos         string
	Convergence   string
	ForceBalance  string
	BatchSize     string
	BranchStyle   string
	ChainStyle    string
	PreferVanilla bool
	AutoFix       bool
	LLMEnabled    bool
	LLMProvider   string
}

func newConfigFormValues(cfg domain.BuildConfig) *configFormValues {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return &configFormValues{
		MaxChildren:   strconv.Itoa(cfg.MaxChildrenPerNode),
		TopThemes:     strconv.Itoa(cfg.TopThemesPerSchool),
		Density:       ff(cfg.Density),
		Symmetry:      ff(cfg.Symmetry),
		Chaos:         ff(cfg.Chaos),
		Convergence:   ff(cfg.ConvergenceChance),
		ForceBalance:  ff(cfg.ForceBalance),
		BatchSize:     strconv.Itoa(cfg.BatchSize),
		BranchStyle:   cfg.BranchStyle,
		ChainStyle:    cfg.ChainStyle,
		PreferVanilla: cfg.PreferVanillaRoots,
		AutoFix:       cfg.AutoFixUnreachable,
		LLMEnabled:    cfg.LLMAPI.Enabled,
		LLMProvider:   cfg.LLMAPI.Provider,
	}
}

// apply copies validated values onto cfg. Every problem is reported at once.
func (v *configFormValues) apply(cfg *domain.BuildConfig) error {
	var errs []error
	atoi := func(name, s string, lo, hi int) int {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < lo || n > hi {
			errs = append(errs, fmt.Errorf("%s: want a whole number in %d..%d, got %q", name, lo, hi, s))
		}
		return n
	}
	unit := func(name, s string) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || f < 0 || f > 1 {
			errs = append(errs, fmt.Errorf("%s: want a number in 0..1, got %q", name, s))
		}
		return f
	}

	out := *cfg
	out.MaxChildrenPerNode = atoi("max children", v.MaxChildren, 1, 8)
	out.TopThemesPerSchool = atoi("top themes", v.TopThemes, 1, 50)
	out.BatchSize = atoi("batch size", v.BatchSize, 5, 500)
	out.Density = unit("density", v.Density)
	out.Symmetry = unit("symmetry", v.Symmetry)
	out.Chaos = unit("chaos", v.Chaos)
	out.ConvergenceChance = unit("convergence", v.Convergence)
	out.ForceBalance = unit("force balance", v.ForceBalance)
	out.BranchStyle = v.BranchStyle
	out.ChainStyle = v.ChainStyle
	out.PreferVanillaRoots = v.PreferVanilla
	out.AutoFixUnreachable = v.AutoFix
	out.LLMAPI.Enabled = v.LLMEnabled
	out.LLMAPI.Provider = v.LLMProvider

	if err := errors.Join(errs...); err != nil {
		return err
	}
	*cfg = out
	return nil
}

func validateRange(lo, hi float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || f < lo || f > hi {
			return fmt.Errorf("enter a number between %g and %g", lo, hi)
		}
		return nil
	}
}

func numberInput(title string, value *string, lo, hi float64) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(validateRange(lo, hi))
}

func configForm(v *configFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			numberInput("Max children per node (1-8)", &v.MaxChildren, 1, 8),
			numberInput("Top themes per school", &v.TopThemes, 1, 50),
			huh.NewConfirm().Title("Prefer vanilla roots?").Value(&v.PreferVanilla),
			huh.NewConfirm().Title("Repair unreachable nodes?").Value(&v.AutoFix),
		).Title("Shape"),
		huh.NewGroup(
			numberInput("Density (0-1)", &v.Density, 0, 1),
			numberInput("Symmetry (0-1)", &v.Symmetry, 0, 1),
			numberInput("Chaos (0-1)", &v.Chaos, 0, 1),
			numberInput("Convergence chance (0-1)", &v.Convergence, 0, 1),
			numberInput("Force balance (0-1)", &v.ForceBalance, 0, 1),
		).Title("Graph knobs"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Branch style").
				Options(huh.NewOptions("chain", "fan")...).
				Value(&v.BranchStyle),
			huh.NewSelect[string]().
				Title("Chain style").
				Options(huh.NewOptions("linear", "branching")...).
				Value(&v.ChainStyle),
		).Title("Style"),
		huh.NewGroup(
			huh.NewConfirm().Title("Use an LLM for oracle chains?").Value(&v.LLMEnabled),
			huh.NewSelect[string]().
				Title("Provider").
				Options(huh.NewOptions("openrouter", "ollama")...).
				Value(&v.LLMProvider),
			numberInput("Batch size (min 5)", &v.BatchSize, 5, 500),
		).Title("Oracle"),
	).WithTheme(spelltreeHuhTheme()).WithShowHelp(false)
}

// spelltreeHuhTheme is the huh base theme with the formatter palette.
func spelltreeHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
