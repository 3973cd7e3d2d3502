package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lunatint/internal/app/errors"
	"lunatint/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandHelp CommandType = iota
	CommandGenerate
	CommandFile
	CommandDocument
	CommandVersion
	CommandInit
)

// Options contains the parsed command-line arguments
type Options struct {
	Type     CommandType
	Path     string
	Colors   []string
	Inputs   []string
	Only     []string
	Out      string
	DryRun   bool
	Emit     bool
	Force    bool
	Watch    bool
	Config   string
	LogLevel string
	// Preview overrides preview.enabled when set
	Preview *bool
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version   bool
	preview   bool
	noPreview bool
}

// Parse parses command-line args and returns a Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type: CommandHelp,
	}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildGenerateCommand(result),
		buildFileCommand(result),
		buildDocumentCommand(result),
		buildInitCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if strings.HasPrefix(err.Error(), "unknown command") {
			return nil, fmt.Errorf("%w: %w", errors.ErrUnknownCommand, err)
		}

		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	switch {
	case flags.noPreview:
		result.Preview = boolPtr(false)
	case flags.preview:
		result.Preview = boolPtr(true)
	}

	return result, nil
}

func boolPtr(v bool) *bool {
	return &v
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         config.AppDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandHelp
		},
	}

	cmd.PersistentFlags().StringVar(&result.Config, "config", "", "Path to "+config.FileName)
	cmd.PersistentFlags().StringVar(&result.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.preview, "preview", false, "Show swatches for the applied colors")
	cmd.PersistentFlags().BoolVar(&flags.noPreview, "no-preview", false, "Do not show swatches")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// addRequestFlags registers the flags naming colors to apply
func addRequestFlags(cmd *cobra.Command, result *Options) {
	cmd.Flags().StringArrayVarP(&result.Colors, "color", "c", nil, `Colors as "name:value[,step]", separated by ';' (repeatable)`)
	cmd.Flags().StringArrayVarP(&result.Inputs, "input", "i", nil, "JSON or YAML request file (repeatable)")
	cmd.Flags().StringArrayVar(&result.Only, "only", nil, "Only apply colors whose name matches the glob (repeatable)")
}

// addOutputFlags registers the flags controlling where a document is written
func addOutputFlags(cmd *cobra.Command, result *Options) {
	cmd.Flags().StringVarP(&result.Out, "out", "o", "", "Write to this path instead of the source")
	cmd.Flags().BoolVarP(&result.DryRun, "dry-run", "n", false, "Print the result instead of writing it")
	cmd.Flags().BoolVarP(&result.Watch, "watch", "w", false, "Reapply whenever an input file changes")
}

// buildGenerateCommand creates the generate subcommand
func buildGenerateCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g", "gen"},
		Short:   "Generate ramps and preview them",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandGenerate
		},
	}

	addRequestFlags(cmd, result)
	cmd.Flags().BoolVarP(&result.Emit, "emit", "e", false, "Print Lunacy swatch objects")

	return cmd
}

// buildFileCommand creates the file subcommand
func buildFileCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "file <colors.json>",
		Aliases: []string{"f"},
		Short:   "Apply colors to a color-definition file",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandFile
			result.Path = args[0]
		},
	}

	addRequestFlags(cmd, result)
	addOutputFlags(cmd, result)

	return cmd
}

// buildDocumentCommand creates the doc subcommand
func buildDocumentCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc <design.free|document.json>",
		Aliases: []string{"d", "document"},
		Short:   "Apply colors to a Lunacy document",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandDocument
			result.Path = args[0]
		},
	}

	addRequestFlags(cmd, result)
	addOutputFlags(cmd, result)

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter " + config.FileName,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
			if len(args) > 0 {
				result.Path = args[0]
			}
		},
	}

	cmd.Flags().BoolVarP(&result.Force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVarP(&result.DryRun, "dry-run", "n", false, "Print the file instead of writing it")

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}

	return cmd
}
