package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lixenwraith/liveterm/audio"
	"github.com/lixenwraith/liveterm/config"
	"github.com/lixenwraith/liveterm/editor"
	"github.com/lixenwraith/liveterm/live"
	"github.com/lixenwraith/liveterm/logx"
	"github.com/lixenwraith/liveterm/plot"
	"github.com/lixenwraith/liveterm/spring"
	"github.com/lixenwraith/liveterm/style"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const inspectorEntries = 200

// --- edit ---

func newEditCmd(flags *globalFlags) *cobra.Command {
	var printResult bool
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit text in a raw-mode session (hold Esc to quit)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			var text string
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil && !os.IsNotExist(err) {
					return errors.Wrapf(err, "read %s", args[0])
				}
				text = string(data)
			}

			ed := editor.New(editor.Options{
				Text:       text,
				TabWidth:   cfg.Editor.TabWidth,
				StatusLine: cfg.Editor.StatusLine,
				Formatter:  style.NewFormatter(cfg.ColorMode()),
			})
			if err := runSession(cmd.Context(), cfg, "editor", ed, nil); err != nil {
				return err
			}

			if len(args) == 1 {
				if err := os.WriteFile(args[0], []byte(ed.Text()), 0o644); err != nil {
					return errors.Wrapf(err, "write %s", args[0])
				}
			}
			if printResult {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), ed.Text())
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&printResult, "print", false, "print the final buffer after the session ends")
	return cmd
}

// --- plot ---

func newPlotCmd(flags *globalFlags) *cobra.Command {
	var out string
	var function string
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Edit a function, domain and sample count interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			if out != "" {
				cfg.Plot.Output = out
			}

			surface, closeSurface, err := openSurface(cfg.Plot.Output)
			if err != nil {
				return err
			}
			defer closeSurface()

			feedback := audio.NewFeedback(audio.Config{Enabled: cfg.Audio.Enabled, Volume: cfg.Audio.Volume})
			if err := feedback.Init(); err != nil {
				logx.Ctx(cmd.Context()).Error("audio disabled", "err", err)
			}
			defer feedback.Close()

			ed := plot.New(plot.Options{
				Function:  function,
				Domain:    cfg.Plot.Domain,
				Steps:     cfg.Plot.Steps,
				Surface:   surface,
				Feedback:  feedback,
				Formatter: style.NewFormatter(cfg.ColorMode()),
			})
			defer ed.Close()

			return runSession(cmd.Context(), cfg, "plot", ed, surface.Closed())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "append committed series as JSON lines to this file")
	cmd.Flags().StringVarP(&function, "function", "f", "", "initial function of x")
	return cmd
}

// openSurface picks the JSON-lines surface for path, or memory when path is empty
func openSurface(path string) (plot.Surface, func(), error) {
	if path == "" {
		m := plot.NewMemorySurface()
		return m, func() { m.Close() }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open plot output %s", path)
	}
	s := plot.NewJSONSurface(f)
	return s, func() { s.Close() }, nil
}

// --- spring ---

func newSpringCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "spring",
		Short: "Drag and throw a block hanging from a spring (Esc to quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			cfg.Listener.EscapeHits = cfg.Spring.EscapeHits

			params := spring.DefaultParams()
			params.Mass = cfg.Spring.Mass
			params.Stiffness = cfg.Spring.Stiffness
			params.Damping = cfg.Spring.Damping

			toy := spring.New(spring.Options{
				Params:          params,
				BlockColor:      cfg.Spring.BlockColor,
				BackgroundColor: cfg.Spring.BackgroundColor,
				Formatter:       style.NewFormatter(cfg.ColorMode()),
			})
			return runSession(cmd.Context(), cfg, "spring", toy, nil)
		},
	}
}

// --- keys ---

func newKeysCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show decoded key and mouse events (hold Esc to quit)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg, "inspector", live.NewInspector(inspectorEntries), nil)
		},
	}
}

// --- colors ---

func newColorsCmd(flags *globalFlags) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Print the named color palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			return printPalette(cmd.OutOrStdout(), style.NewFormatter(cfg.ColorMode()), filter)
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only names containing this text")
	return cmd
}

func printPalette(w io.Writer, f *style.Formatter, filter string) error {
	for _, name := range style.Names() {
		if filter != "" && !strings.Contains(name, strings.ToLower(filter)) {
			continue
		}
		c := style.MustParse(name)
		swatch := f.Format("      ", style.None, c, style.Normal)
		label := f.Format(fmt.Sprintf(" %-22s", name), c, style.None, style.Bold)
		negative := f.Format(" negative ", c.Negative(), c, style.Normal)
		if _, err := fmt.Fprintf(w, "%s%s%s %s\n", swatch, label, negative, c.Hex()); err != nil {
			return err
		}
	}
	return nil
}

// --- config ---

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
