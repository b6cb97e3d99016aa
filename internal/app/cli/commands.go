package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"orslog/internal/app/logs"
	"orslog/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandView CommandType = iota
	CommandEmit
	CommandWatch
	CommandInit
	CommandVersion
	CommandHelp
)

// Options contains the parsed command-line arguments
type Options struct {
	Type     CommandType
	NoUI     bool
	Severity string
	Tag      string
	Message  string
	Dirs     []string
	Force    bool
	DryRun   bool
}

// rootFlags holds flag values for the root command
type rootFlags struct {
	version bool
}

// Parse parses command-line args and returns a Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type: CommandView,
	}

	var flags rootFlags

	root := buildRootCommand(result, &flags)
	root.AddCommand(
		buildViewCommand(result),
		buildEmitCommand(result),
		buildWatchCommand(result),
		buildInitCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if flags.version {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "A local log broadcast viewer",
		Long: `orslog hosts a local broadcast channel, collects log entries emitted
by other processes and shows them in a filterable terminal dashboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandView
		},
	}

	cmd.PersistentFlags().BoolVar(&result.NoUI, "no-ui", false, "Stream entries to stdout instead of the dashboard")
	cmd.Flags().BoolVarP(&flags.version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildViewCommand creates the view subcommand
func buildViewCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"v"},
		Short:   "Host the broadcast channel and show received entries",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandView
		},
	}

	return cmd
}

// buildEmitCommand creates the emit subcommand
func buildEmitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "emit <message...>",
		Aliases: []string{"e"},
		Short:   "Publish a single entry to a running viewer",
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandEmit
			result.Message = strings.Join(args, " ")
		},
	}

	cmd.Flags().StringVarP(&result.Severity, "type", "t", logs.Info.String(), "Severity of the entry")
	cmd.Flags().StringVar(&result.Tag, "tag", "", "Tag of the entry (defaults to publisher.tag)")

	return cmd
}

// buildWatchCommand creates the watch subcommand
func buildWatchCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch [dirs...]",
		Aliases: []string{"w"},
		Short:   "Tail log files and publish appended lines",
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandWatch
			result.Dirs = args

			if len(result.Dirs) == 0 {
				result.Dirs = []string{"."}
			}
		},
	}

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"i"},
		Short:   "Generate orslog.yaml with default settings",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
		},
	}

	cmd.Flags().BoolVarP(&result.Force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&result.DryRun, "dry-run", false, "Print the file instead of writing it")

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
