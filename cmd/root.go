/*
Copyright © 2025 The tzgrid Authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tzgrid/tzgrid/country"
	"github.com/tzgrid/tzgrid/logger"
	"github.com/tzgrid/tzgrid/render"
	"github.com/tzgrid/tzgrid/timetable"
)

var (
	reference      string
	countriesFile  string
	outputPath     string
	earlyLateColor string
	noonColor      string
	normalColor    string
	date           string
	textOutput     bool
	v              = viper.New()
	l              = logger.GetLogger()

	// Set to true when the config file uses camelCase keys instead of
	// hyphenated flag names.
	replaceHyphenWithCamelCase = false
)

// selectionKey is the config key for the wizard-saved country list. It must
// never match a flag name: bindFlags replays matching config values into
// flags, and a list replayed into the --countries string flag would turn a
// country code into a bogus file path.
const selectionKey = "selection"

// getConfigPath returns the directory holding the tzgrid config file.
func getConfigPath() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

// initializeConfig wires viper to the config file and environment, creating
// the config file on first run, then binds the command's flags.
func initializeConfig(cmd *cobra.Command) error {
	verboseCount, _ := cmd.Flags().GetCount("verbose")
	logger.SetLogLevel(verboseCount)

	configName := ".tzgrid"
	configType := "yaml"
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	configPath := getConfigPath()
	l.Debug().Str("configPath", configPath).Send()
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if err := v.SafeWriteConfig(); err != nil {
				l.Error().Err(err).Send()
			}
			l.Info().Str("configFile", filepath.Join(configPath, configName+"."+configType)).Msg("New config file created:")
		} else {
			l.Error().Str("viper", err.Error()).Send()
		}
	}

	// Flags bind to prefixed environment variables, e.g. --reference to
	// TZGRID_REFERENCE, to avoid collisions with unrelated variables.
	v.SetEnvPrefix("TZGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	bindFlags(cmd, v)

	return nil
}

// bindFlags applies viper config values to any flag the user did not set on
// the command line. Array values are replayed element by element.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name
		if replaceHyphenWithCamelCase {
			configName = strings.ReplaceAll(f.Name, "-", "")
		}

		l.Debug().Str("flag", f.Name).Str("configName", configName).Msg("Binding flag to viper config:")
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			if arr, ok := val.([]interface{}); ok {
				for _, item := range arr {
					if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", item)); err != nil {
						l.Error().Str("viper", err.Error()).Send()
					}
				}
			} else {
				if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
					l.Error().Str("viper", err.Error()).Send()
				}
			}
		}
	})
}

// validateArgs rejects malformed flag values before any work happens.
func validateArgs(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("date") {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
		}
	}
	return nil
}

// persistentPreRunE binds cobra and viper before any command runs.
func persistentPreRunE(cmd *cobra.Command, _ []string) error {
	return initializeConfig(cmd)
}

// loadTargets returns the target country list: the --countries file when
// given, otherwise the selection saved in the config by the wizard.
func loadTargets(cmd *cobra.Command) ([]country.Entry, error) {
	if cmd.Flags().Changed("countries") || countriesFile != "" {
		return country.LoadList(countriesFile)
	}

	codes := v.GetStringSlice(selectionKey)
	if len(codes) == 0 {
		return nil, fmt.Errorf("no countries given: use --countries FILE or run `tzgrid wizard`")
	}

	var entries []country.Entry
	for _, code := range codes {
		entry, err := country.Resolve(code)
		if err != nil {
			return nil, fmt.Errorf("config country list: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// buildTable resolves the reference country and computes the timetable for
// the requested date.
func buildTable(cmd *cobra.Command) (*timetable.Table, error) {
	if reference == "" {
		return nil, fmt.Errorf("no reference country given: use --reference CODE")
	}

	ref, err := country.Resolve(reference)
	if err != nil {
		return nil, err
	}

	targets, err := loadTargets(cmd)
	if err != nil {
		return nil, err
	}

	runDate, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	l.Info().Str("reference", ref.Zone).Int("targets", len(targets)).Str("date", date).Msg("building timetable")
	return timetable.Build(ref, targets, runDate)
}

// saveUserPreferences persists the color choices and reference country so
// the next run can omit them.
func saveUserPreferences() {
	v.Set("reference", reference)
	v.Set("early-late-color", earlyLateColor)
	v.Set("noon-color", noonColor)
	v.Set("normal-color", normalColor)
	if err := v.WriteConfig(); err != nil {
		l.Error().Str("viper", err.Error()).Send()
	}
}

// bucketColors maps a cell bucket to terminal colors for --text output.
func bucketColors(b timetable.Bucket) text.Colors {
	switch b {
	case timetable.EarlyLate:
		return text.Colors{text.FgHiYellow}
	case timetable.Noon:
		return text.Colors{text.FgHiCyan}
	default:
		return nil
	}
}

// printTimeTable renders the grid as a terminal table, one row per country,
// cells tinted by bucket.
func printTimeTable(tbl *timetable.Table) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = true
	t.Style().Title.Align = text.AlignCenter
	t.SetTitle(tbl.Title())

	header := table.Row{"Country"}
	for _, hour := range tbl.Hours() {
		header = append(header, fmt.Sprintf("%02d:00", hour))
	}
	t.AppendHeader(header)

	for _, row := range tbl.Rows {
		label := fmt.Sprintf("%s [%s]", row.Country.Name, timetable.FormatOffset(row.OffsetMinutes))
		r := table.Row{label}
		for _, cell := range row.Cells {
			value := timetable.FormatLocal(cell.Local)
			if colors := bucketColors(cell.Bucket); colors != nil {
				value = colors.Sprint(value)
			}
			r = append(r, value)
		}
		t.AppendRow(r)
	}

	t.Render()
}

// runRoot executes the main flow: build the table, then render it to a PNG
// or the terminal.
func runRoot(cmd *cobra.Command, args []string) error {
	for key, value := range v.AllSettings() {
		l.Debug().Str(key, fmt.Sprintf("%v", value)).Msg("viper:")
	}

	tbl, err := buildTable(cmd)
	if err != nil {
		return err
	}

	if textOutput {
		printTimeTable(tbl)
		saveUserPreferences()
		return nil
	}

	scheme, err := render.ParseScheme(earlyLateColor, noonColor, normalColor)
	if err != nil {
		return err
	}

	if err := render.WritePNG(tbl, scheme, outputPath); err != nil {
		return err
	}

	// Persist only after the run succeeded, so a bad color or output path
	// never ends up in the config.
	saveUserPreferences()

	fmt.Printf("Timetable generated successfully: %s\n", outputPath)
	return nil
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "tzgrid",
	Version: "v1.0.2",
	Short:   "Working-hours timetable across countries",
	Long: `tzgrid converts a reference country's 8:00-20:00 working window into local
times for a list of other countries and renders the result as a color-coded
table image. Hours before 9:00 and from 18:00 on are tinted as early/late,
the 12:00 hour as noon, everything in between stays plain.

Country codes are ISO alpha-3 (FRA, DEU, JPN). Countries spanning several
timezones take a region suffix: USA-E/C/M/P, RUS-W/C/E, CAN-E/C/M/P,
BRA-E/C, CHN-E/W, AUS-E/C/W. A bare code picks the country's primary zone.

The country list file has one code per line; blank lines and #-comments
(full-line or trailing) are ignored. Alternatively, run the interactive
wizard once and tzgrid remembers your selection:

  - Linux/Mac: $HOME/.config/.tzgrid.yaml
  - Windows:   %APPDATA%\.tzgrid.yaml

Examples:

  # Render the working-hours table for the saved country selection:
  $ tzgrid --reference FRA

  # Use an explicit country list file and output path:
  $ tzgrid --reference FRA --countries team.txt --output team.png

  # Check a date around a daylight-saving change:
  $ tzgrid --reference FRA --countries team.txt --date 2025-03-30

  # Print the table to the terminal instead of writing a PNG:
  $ tzgrid --reference FRA --text

  # Override the cell colors:
  $ tzgrid --reference FRA --early-late-color "#FF8C00" --noon-color skyblue`,
	Args:              validateArgs,
	PersistentPreRunE: persistentPreRunE,
	RunE:              runRoot,
	SilenceUsage:      true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`{{printf "tzgrid %s\n" .Version}}`)
	rootCmd.Flags().StringVarP(&reference, "reference", "r", "", "``reference country code whose 8:00-20:00 window drives the table, e.g. FRA")
	rootCmd.Flags().StringVarP(&countriesFile, "countries", "c", "", "``path to a file with one country code per line")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "timetable.png", "``output PNG file path")
	rootCmd.Flags().StringVarP(&date, "date", "d", time.Now().Format(time.DateOnly), "``date to use for the conversion. Expects YYYY-MM-DD format. Defaults to today.")
	rootCmd.Flags().StringVar(&earlyLateColor, "early-late-color", "#FFD700", "``color for early/late hours, CSS name or hex")
	rootCmd.Flags().StringVar(&noonColor, "noon-color", "#87CEEB", "``color for the noon hour, CSS name or hex")
	rootCmd.Flags().StringVar(&normalColor, "normal-color", "white", "``color for normal working hours, CSS name or hex")
	rootCmd.Flags().BoolVarP(&textOutput, "text", "t", false, "print the table to the terminal instead of writing a PNG")
	rootCmd.PersistentFlags().CountP("verbose", "v", "``increase logging verbosity, 1=warn, 2=info, 3=debug, 4=trace")

	rootCmd.AddCommand(NewWizardCmd(v))
}
