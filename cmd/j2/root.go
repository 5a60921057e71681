package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/j2go/internal/version"
	"github.com/arthur-debert/j2go/pkg/config"
	"github.com/arthur-debert/j2go/pkg/context"
	"github.com/arthur-debert/j2go/pkg/errors"
	"github.com/arthur-debert/j2go/pkg/extension"
	"github.com/arthur-debert/j2go/pkg/logging"
	"github.com/arthur-debert/j2go/pkg/registry"
	"github.com/arthur-debert/j2go/pkg/render"
	"github.com/arthur-debert/j2go/pkg/render/filters"
)

// renderFlags holds the root command's flag values.
type renderFlags struct {
	verbosity     int
	format        string
	customFilters bool
	importEnv     string
	output        string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	flags := &renderFlags{}

	rootCmd := &cobra.Command{
		Use:     "j2 [flags] <template> [data]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.RangeArgs(1, 2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.Flags().StringVarP(&flags.format, "format", "f", "?", MsgFlagFormat)
	rootCmd.Flags().BoolVarP(&flags.customFilters, "customs", "C", false, MsgFlagCustoms)
	rootCmd.Flags().StringVar(&flags.importEnv, "import-env", "", MsgFlagImportEnv)
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", MsgFlagOutput)

	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// runRender is the render pipeline: build context, assemble registries,
// render the template, write the bytes out verbatim.
func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
	}

	overrides := map[string]interface{}{}
	if flags.customFilters {
		overrides["extensions.enabled"] = true
	}
	if flags.importEnv != "" {
		overrides["render.import_env"] = flags.importEnv
	}

	settings, err := config.Load(cwd, overrides)
	if err != nil {
		return err
	}
	if flags.verbosity == 0 && settings.Logging.Verbosity > 0 {
		logging.SetupLogger(settings.Logging.Verbosity)
	}

	templatePath := args[0]
	dataSource := "-"
	if len(args) == 2 {
		dataSource = args[1]
	}

	format, err := resolveFormat(flags.format, dataSource)
	if err != nil {
		return err
	}

	var data []byte
	hasData := false
	switch {
	case dataSource == "-" && format == context.FormatEnv:
		// No explicit source: the ambient environment is the context
	case dataSource == "-":
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, errors.ErrConfig, "failed to read data from stdin")
		}
		hasData = true
	default:
		data, err = os.ReadFile(dataSource)
		if err != nil {
			return errors.Wrapf(err, errors.ErrNotFound, "failed to read data file %s", dataSource)
		}
		hasData = true
	}

	ctx, err := context.Build(context.BuildOptions{
		Format:    format,
		Data:      data,
		HasData:   hasData,
		Environ:   context.Environ(os.Environ()),
		ImportEnv: settings.Render.ImportEnv,
	})
	if err != nil {
		return err
	}

	filterReg, testReg, err := buildRegistries(cwd, settings)
	if err != nil {
		return err
	}

	engine := render.New(filterReg, testReg)
	out, err := engine.Render(cwd, templatePath, ctx)
	if err != nil {
		return err
	}

	if settings.Render.TrimNewline {
		out = bytes.TrimSuffix(out, []byte("\n"))
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, out, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "failed to write output to %s", flags.output)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// resolveFormat applies the '?' auto-detection rule: no data source means
// env, otherwise the data file extension decides.
func resolveFormat(flagValue, dataSource string) (context.Format, error) {
	if flagValue != "?" {
		return context.ParseFormat(flagValue)
	}
	if dataSource == "-" {
		return context.FormatEnv, nil
	}
	return context.DetectFormat(dataSource)
}

// buildRegistries seeds the built-in filters/tests and merges in the
// extension module when enabled.
func buildRegistries(cwd string, settings *config.Settings) (registry.Registry[filters.Filter], registry.Registry[filters.Test], error) {
	filterReg := filters.Builtin()
	testReg := filters.BuiltinTests()

	if settings.Extensions.Enabled {
		mod, err := extension.Load(cwd, settings.Extensions.Module)
		if err != nil {
			return nil, nil, err
		}
		extension.Apply(mod, filterReg, testReg)
	}

	return filterReg, testReg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "j2go version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}
