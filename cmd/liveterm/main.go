package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/liveterm/config"
	"github.com/lixenwraith/liveterm/live"
	"github.com/lixenwraith/liveterm/logx"
	"github.com/lixenwraith/liveterm/style"
	"github.com/lixenwraith/liveterm/terminal"
	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) (code int) {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			os.Stdout.Sync()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mLIVETERM CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Stderr.Sync()
			code = 2
		}
	}()

	ctx = pslog.ContextWithLogger(ctx, logx.Console(os.Stderr))

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		return 1
	}
	return 0
}

// reportError prints err as styled text once the terminal is cooked again
func reportError(w io.Writer, err error) {
	msg := "liveterm: " + err.Error()
	fmt.Fprintln(w, style.Format(msg, style.MustParse("red"), style.None, style.Bold))
}

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "liveterm",
		Short:         "Raw-mode terminal editor, plot editor and key inspector",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to config file")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write structured logs to this file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(newEditCmd(flags))
	root.AddCommand(newPlotCmd(flags))
	root.AddCommand(newSpringCmd(flags))
	root.AddCommand(newKeysCmd(flags))
	root.AddCommand(newColorsCmd(flags))
	root.AddCommand(newConfigCmd(flags))

	return root
}

// load reads the configuration and applies flag overrides
func (f *globalFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.logFile != "" {
		cfg.Log.File = f.logFile
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// liveOptions maps configuration onto the session loop
func liveOptions(cfg config.Config, closed <-chan struct{}) live.Options {
	return live.Options{
		EscapeHits:   cfg.Listener.EscapeHits,
		PollInterval: cfg.Writer.PollInterval,
		Mouse:        cfg.Listener.Mouse,
		Closed:       closed,
	}
}

// runSession opens the controlling terminal and drives consumer until Kill
func runSession(ctx context.Context, cfg config.Config, name string, consumer live.Consumer, closed <-chan struct{}) error {
	log, closer, err := logx.New(logx.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	defer closer.Close()
	log = logx.WithConsumer(log, name)

	backend, err := terminal.NewBackend(terminal.BackendOptions{
		ReadSize:    cfg.Listener.ReadSize,
		PollTimeout: cfg.Writer.PollInterval,
	})
	if err != nil {
		return err
	}

	sess := terminal.NewSession(backend, log)
	ctx = pslog.ContextWithLogger(ctx, sess.Logger())
	return live.Run(ctx, sess, consumer, liveOptions(cfg, closed))
}
