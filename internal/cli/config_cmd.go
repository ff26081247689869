package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/seabearDEV/hlwords/internal/addon"
	"github.com/seabearDEV/hlwords/internal/config"
	"github.com/seabearDEV/hlwords/internal/fileutil"
	"github.com/seabearDEV/hlwords/internal/format"
	"github.com/seabearDEV/hlwords/internal/highlight"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and scaffold configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(a, cmd)
		},
	}

	// config show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(a, cmd)
		},
	}

	// config path
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the config file in use",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintln(cmd.OutOrStdout(), used)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), fileutil.GetConfigFilePath()+" "+format.Gray("(not created)"))
		},
	}

	// config palette
	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "List the mIRC colors accepted by --color",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			selected := a.cfg.ColorCode()
			for _, c := range highlight.Palette {
				line := c.Code + " " + format.ColorSwatch(c)
				if c.Code == selected {
					line += " " + format.Gray("(current)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}

	// config init
	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a starter config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				fileutil.EnsureDataDirectoryExists()
				path = fileutil.GetConfigFilePath()
			}

			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			case err == nil:
				if backup := fileutil.CreateBackup(path, "config"); backup != "" {
					fmt.Fprintln(cmd.OutOrStdout(), format.Gray("Backed up to "+backup))
				}
			case !errors.Is(err, fs.ErrNotExist):
				return err
			}

			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return err
			}
			if err := fileutil.SaveFile(path, config.StarterFile()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.Success("Wrote "+path))
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")

	// config info
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show version and addon information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := addon.DefaultInfo
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Addon: %s %s\n", info.Name, info.Version)
			fmt.Fprintf(w, "Description: %s\n", info.Description)
			fmt.Fprintf(w, "Version: %s\n", Version)
			fmt.Fprintf(w, "Commit: %s\n", Commit)
			fmt.Fprintf(w, "Go: %s\n", runtime.Version())
			fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(w, "Data directory: %s\n", fileutil.GetDataDirectory())
			fmt.Fprintf(w, "Hooked events: %s\n", strings.Join(addon.Events(), ", "))
		},
	}

	// config examples
	examplesCmd := &cobra.Command{
		Use:         "examples",
		Short:       "Show usage examples",
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			examples := []string{
				"# Highlight a single message",
				"hlw check \"this is an example\"",
				"",
				"# Highlight other words in light blue",
				"hlw check -w go,rust --color lightblue \"go and rust\"",
				"",
				"# Only whole words",
				"hlw check -w cat --whole-words \"cat category\"",
				"",
				"# Run the addon over tab separated chat events",
				"printf 'alice\\tan example\\n' | hlw filter",
				"",
				"# Follow a growing chat log",
				"hlw follow chat.tsv",
				"",
				"# Create a config file",
				"hlw config init",
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(examples, "\n"))
		},
	}

	// config completions
	completionsCmd := &cobra.Command{
		Use:         "completions [bash|zsh|fish|powershell]",
		Short:       "Generate shell completions",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rootCmd := cmd.Root()
			if len(args) == 0 {
				return rootCmd.GenBashCompletion(cmd.OutOrStdout())
			}
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported shell: %s (use bash, zsh, fish, or powershell)", args[0])
			}
		},
	}

	configCmd.AddCommand(showCmd, pathCmd, paletteCmd, initCmd, infoCmd, examplesCmd, completionsCmd)
	return configCmd
}

func showConfig(a *app, cmd *cobra.Command) error {
	cfg := a.cfg
	color := cfg.Color
	if c, ok := highlight.LookupColor(cfg.Color); ok {
		color = c.Code + " (" + c.Name + ")"
	}
	settings := []format.Setting{
		{Key: "words", Value: cfg.Words},
		{Key: "color", Value: color},
		{Key: "whole_words", Value: cfg.WholeWords},
		{Key: "mode", Value: cfg.Mode},
		{Key: "attrs", Value: cfg.Attrs},
		{Key: "console.render", Value: cfg.Console.Render},
		{Key: "console.timestamps", Value: cfg.Console.Timestamps},
		{Key: "logging.enabled", Value: cfg.Logging.Enabled},
		{Key: "logging.level", Value: cfg.Logging.Level},
		{Key: "logging.file", Value: cfg.LogConfig(false).File},
		{Key: "logging.max_size_mb", Value: cfg.Logging.MaxSizeMB},
		{Key: "logging.max_backups", Value: cfg.Logging.MaxBackups},
		{Key: "logging.max_age_days", Value: cfg.Logging.MaxAgeDays},
		{Key: "logging.compress", Value: cfg.Logging.Compress},
	}
	fmt.Fprint(cmd.OutOrStdout(), format.FormatSettings(settings))
	return nil
}
