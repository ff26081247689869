package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/seabearDEV/hlwords/internal/addon"
	"github.com/seabearDEV/hlwords/internal/config"
	"github.com/seabearDEV/hlwords/internal/format"
	"github.com/seabearDEV/hlwords/internal/highlight"
	"github.com/seabearDEV/hlwords/internal/host"
	"github.com/seabearDEV/hlwords/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time via ldflags.
	Version = "dev"
	// Commit is set at build time via ldflags.
	Commit = "none"
)

// skipConfig marks commands that must run even when the config is invalid.
const skipConfig = "skip-config"

// app holds the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	debug   bool
	noAttrs bool

	cfg    *config.Config
	logger *logging.Logger
}

// NewRootCmd creates the root cobra command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{
		v:      viper.New(),
		logger: logging.NopLogger(),
	}

	rootCmd := &cobra.Command{
		Use:   "hlw",
		Short: "Highlight configured words in chat messages with mIRC colors",
		Long: `hlw runs the Highlight Words addon against chat events.

Events are read as tab-separated lines, "nick<TAB>message" or
"event<TAB>nick<TAB>message". Messages containing a configured word are
re-emitted with the word wrapped in mIRC color codes.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipConfig] == "true" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ~/.hlwords/config.yaml)")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr")
	pf.StringSliceP("words", "w", nil, "Words to highlight, in order (repeatable or comma separated)")
	pf.String("color", "", "mIRC color code 00-15 or color name")
	pf.Bool("whole-words", false, "Only match whole words (ASCII word boundaries)")
	pf.String("mode", "", "How multiple words are applied: sequential or combined")
	pf.String("render", "", "Render colors in the terminal: auto, always or never")
	pf.BoolVar(&a.noAttrs, "no-attrs", false, "Use the plain host API even when attributes are available")

	_ = a.v.BindPFlag("words", pf.Lookup("words"))
	_ = a.v.BindPFlag("color", pf.Lookup("color"))
	_ = a.v.BindPFlag("whole_words", pf.Lookup("whole-words"))
	_ = a.v.BindPFlag("mode", pf.Lookup("mode"))
	_ = a.v.BindPFlag("console.render", pf.Lookup("render"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("hlw version %s (commit: %s)\n", Version, Commit))

	// Register commands
	rootCmd.AddCommand(
		newCheckCmd(a),
		newFilterCmd(a),
		newFollowCmd(a),
		newConfigCmd(a),
	)

	return rootCmd
}

// setup loads the configuration once and opens the log.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	if a.noAttrs {
		a.v.Set("attrs", false)
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Logging.Enabled || a.debug {
		logger, err := logging.New(cfg.LogConfig(a.debug))
		if err != nil {
			return err
		}
		a.logger = logger.With("cmd", cmd.Name())
	}
	a.logger.Debug("configuration loaded", "file", a.v.ConfigFileUsed(), "words", len(cfg.Words))

	format.SetColorsEnabled(renderEnabled(cfg.Console.Render, cmd.OutOrStdout()))
	return nil
}

// renderEnabled decides whether mIRC codes become terminal colors.
func renderEnabled(mode string, out io.Writer) bool {
	switch mode {
	case config.RenderAlways:
		return true
	case config.RenderNever:
		return false
	default:
		return isTerminal(out)
	}
}

// highlighter compiles the configured words. Compilation errors surface
// here, once, before any event is processed.
func (a *app) highlighter() (*highlight.Highlighter, error) {
	h, err := a.cfg.NewHighlighter()
	if err != nil {
		a.logger.Error("highlighter initialization failed", "error", err)
		return nil, err
	}
	return h, nil
}

// newConsole builds a console host on cmd's output and registers the addon
// with it. The startup line goes to stderr so stdout carries only chat lines.
func (a *app) newConsole(cmd *cobra.Command) (*host.Console, error) {
	h, err := a.highlighter()
	if err != nil {
		return nil, err
	}

	console := host.NewConsole(cmd.OutOrStdout(),
		host.WithRender(format.ColorsEnabled()),
		host.WithTimestamps(a.cfg.Console.Timestamps),
		host.WithStatus(cmd.ErrOrStderr()),
	)

	var api host.API = console
	if !a.cfg.Attrs {
		api = console.Plain()
	}
	if _, err := addon.Register(h, api, addon.WithLogger(a.logger)); err != nil {
		return nil, err
	}
	return console, nil
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, format.Error(err.Error()))
		stop()
		os.Exit(1)
	}
}
