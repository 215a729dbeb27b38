package main

import (
	"fmt"
	"log/slog"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"godot-cpp-wrap/internal/config"
	"godot-cpp-wrap/internal/envconfig"
	"godot-cpp-wrap/internal/pipeline"
	"godot-cpp-wrap/internal/version"
)

// NewCLI returns the root command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "godot-cpp-wrap",
		Short:         "Generate the godot-cpp meson build and module adaptor headers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: envconfig.LogLevel(),
			})))
		},
		RunE: runHandler(pipeline.ModeAll),
	}

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file (built-in defaults when empty)")
	rootCmd.PersistentFlags().String("report", "", "Write a YAML mapping report to this path")

	mesonCmd := &cobra.Command{
		Use:   "meson",
		Short: "Only generate the bindings and render meson.build",
		Args:  cobra.NoArgs,
		RunE:  runHandler(pipeline.ModeMeson),
	}

	adaptorCmd := &cobra.Command{
		Use:   "adaptor",
		Short: "Only generate the module adaptor headers",
		Args:  cobra.NoArgs,
		RunE:  runHandler(pipeline.ModeAdaptor),
	}

	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "Print the latest tags of godot-cpp and the engine",
		Args:  cobra.NoArgs,
		RunE:  LatestHandler,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  ConfigHandler,
	}

	rootCmd.AddCommand(mesonCmd, adaptorCmd, latestCmd, configCmd)

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadFile(path)
}

func runHandler(mode pipeline.Mode) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := []pipeline.Option{pipeline.WithToken(envconfig.GitHubToken())}
		if report, _ := cmd.Flags().GetString("report"); report != "" {
			opts = append(opts, pipeline.WithReport(report))
		}

		res := pipeline.New(cfg, opts...).Run(cmd.Context(), mode)

		return res.Err()
	}
}

// LatestHandler prints the latest tag of each configured repository.
func LatestHandler(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	resolver := version.NewResolver(cfg.API.BaseURL, envconfig.GitHubToken())

	var data [][]string

	for _, repo := range []config.Repository{cfg.Bindings, cfg.Engine} {
		tags, err := resolver.Tags(cmd.Context(), repo.Owner, repo.Name)
		if err != nil {
			return err
		}

		if len(tags) == 0 {
			return fmt.Errorf("%s: %w", repo.Slug(), version.ErrNoTags)
		}

		last := tags[len(tags)-1]
		data = append(data, []string{repo.Slug(), last, version.Release(last), version.Newest(tags)})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"REPOSITORY", "TAG", "RELEASE", "NEWEST"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

// ConfigHandler prints the effective configuration as YAML.
func ConfigHandler(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
