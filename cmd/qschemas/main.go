package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/qompute/qschemas/pkg/backendconfig"
	"github.com/qompute/qschemas/pkg/config"
	"github.com/qompute/qschemas/pkg/errors"
	jsonx "github.com/qompute/qschemas/pkg/json"
	"github.com/qompute/qschemas/pkg/logger"
)

var version = "0.1.0"

func main() {
	settings := config.DefaultSettings()
	var settingsFile string

	root := &cobra.Command{
		Use:   "qschemas",
		Short: "qschemas - validation for quantum execution configs",
		Long: `qschemas validates and canonicalizes the JSON configuration payloads that
select and parameterize a quantum program's processing backend.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if settingsFile != "" {
				if err := config.Load(settingsFile, settings); err != nil {
					return err
				}
			}
			if viper.IsSet("log_level") {
				settings.LogLevel = viper.GetString("log_level")
			}
			return logger.Init(logger.Config{
				Level:       settings.LogLevel,
				Development: settings.Development,
				Encoding:    settings.LogEncoding,
			})
		},
	}

	root.PersistentFlags().StringVar(&settingsFile, "settings", "", "Path to YAML settings file (optional)")
	root.PersistentFlags().String("log-level", "error", "Log level (debug, info, warn, error)")

	viper.SetEnvPrefix("QSCHEMAS")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindEnv("log_level", "QSCHEMAS_LOG_LEVEL")

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("qschemas v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Tags command to show registered config variants
	root.AddCommand(&cobra.Command{
		Use:   "tags",
		Short: "List registered backend config variants",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Registered backend configs:")
			for _, tag := range backendconfig.Tags() {
				fmt.Printf("  - %s\n", tag)
			}
		},
	})

	// Validate command
	validateCmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate backend config payloads",
		Long: `Validate one or more JSON backend config payloads. Reads stdin when no
files are given. Exits non-zero if any payload fails validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validatePayloads(args)
		},
	}
	root.AddCommand(validateCmd)

	// Normalize command
	var indent bool
	normalizeCmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Validate a payload and print its canonical form",
		Long: `Validate a JSON backend config payload and print the canonical wire form:
legacy tags and fields mapped to their current names, defaults applied,
unset optional fields omitted. Reads stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return normalizePayload(args, indent || settings.Indent)
		},
	}
	normalizeCmd.Flags().BoolVar(&indent, "indent", false, "Pretty-print the canonical form")
	root.AddCommand(normalizeCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readPayload reads one payload from a file, or from stdin for "" or "-".
func readPayload(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(name) //nolint:gosec // G304: path comes from the CLI caller
	if err != nil {
		return nil, fmt.Errorf("failed to read payload %s: %w", name, err)
	}
	return data, nil
}

// validatePayloads checks every named payload and reports each outcome.
// Validation failures are reported, not returned: one bad payload must not
// mask the others.
func validatePayloads(names []string) error {
	if len(names) == 0 {
		names = []string{"-"}
	}

	log := logger.Get().With(zap.String("component", "qschemas-cli"))

	failures := 0
	for _, name := range names {
		data, err := readPayload(name)
		if err != nil {
			return err
		}

		rec, err := backendconfig.Decode(data)
		if err != nil {
			failures++
			if errors.IsValidation(err) {
				fmt.Fprintf(os.Stderr, "%s: invalid: %v\n", name, err)
				continue
			}
			return err
		}

		log.Debug("payload validated",
			zap.String("payload", name),
			zap.String("tag", backendconfig.TagFor(rec)))
		fmt.Printf("%s: ok (%s)\n", name, backendconfig.TagFor(rec))

		if helios, ok := rec.(*backendconfig.HeliosEmulatorConfig); ok {
			for _, advisory := range helios.Advisories() {
				fmt.Printf("%s: advisory: %s\n", name, advisory)
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d payloads failed validation", failures, len(names))
	}
	return nil
}

// normalizePayload validates one payload and prints its canonical bytes.
func normalizePayload(args []string, indent bool) error {
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}

	data, err := readPayload(name)
	if err != nil {
		return err
	}

	rec, err := backendconfig.Decode(data)
	if err != nil {
		return err
	}

	var out []byte
	if indent {
		out, err = jsonx.MarshalIndent(rec, "", "  ")
	} else {
		out, err = backendconfig.Encode(rec)
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
