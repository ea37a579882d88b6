package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"clipscout/internal/config"
	"clipscout/internal/deps"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintf(out, "  - yt-dlp: %s\n", fetchToolHint())
			fmt.Fprintln(out, "  - set [storage] driver = \"postgres\" and a dsn (or DATABASE_URL) to share candidates")
			fmt.Fprintln(out, "  - run `clipscout status` to verify directories and tools")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Validate configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(ctx.configPath())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Storage: %s\n", cfg.Storage.Driver)
			fmt.Fprintf(out, "Assets: %s (served under %s)\n", cfg.Paths.AssetsDir, cfg.Assets.URLPrefix)

			locator := deps.NewLocator(cfg.Fetcher.BinaryCandidates, cfg.VersionTimeout())
			tool := deps.CheckFetchTool(cmd.Context(), locator)
			if tool.Available {
				fmt.Fprintf(out, "Fetch tool: %s %s\n", tool.Command, tool.Detail)
			} else {
				fmt.Fprintf(out, "Fetch tool: not found (%s)\n", tool.Detail)
				fmt.Fprintf(out, "  hint: %s\n", fetchToolHint())
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
