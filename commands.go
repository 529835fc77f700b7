package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"door-import/config"
	"door-import/log"
	"door-import/order"
	"door-import/panel"
	"door-import/render"
	"door-import/ui"
)

// Output modes of the parse command.
const (
	outputAuto = "auto"
	outputText = "text"
	outputJSON = "json"
)

var (
	outputFlag string
	holesFlag  bool
	viewFlag   string
	outFlag    string

	parseCmd = &cobra.Command{
		Use:   "parse <files or directories...>",
		Short: "Print the dimensions and holes of panel files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(log.Options{Stderr: true, Level: zapcore.WarnLevel})
			defer log.Close()

			mode, err := resolveOutput(outputFlag, term.IsTerminal(int(os.Stdout.Fd())))
			if err != nil {
				return err
			}
			panels, err := loadPanels(cmd.Context(), args)
			if err != nil {
				return err
			}
			if mode == outputJSON {
				return writePanelsJSON(cmd.OutOrStdout(), panels)
			}
			writePanelsText(cmd.OutOrStdout(), panels, holesFlag)
			return nil
		},
	}

	renderCmd = &cobra.Command{
		Use:   "render <file>",
		Short: "Render a panel file as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(log.Options{Stderr: true, Level: zapcore.WarnLevel})
			defer log.Close()

			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			view, err := render.ParseView(viewFlag)
			if err != nil {
				return err
			}
			p, err := panel.ParseFile(args[0])
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), outFlag, func(w io.Writer) error {
				if view == render.ViewDetail {
					return render.WriteDetailSVG(w, p)
				}
				return render.WriteCardSVG(w, p, cfg.CardHeight)
			})
		},
	}

	preview3dCmd = &cobra.Command{
		Use:   "preview3d <file>",
		Short: "Write the 3D model of a panel as ASCII STL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(log.Options{Stderr: true, Level: zapcore.WarnLevel})
			defer log.Close()

			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			p, err := panel.ParseFile(args[0])
			if err != nil {
				return err
			}
			scene := render.BuildSceneWithDepth(p, cfg.DefaultDepth)
			return writeOutput(cmd.OutOrStdout(), outFlag, func(w io.Writer) error {
				return render.WriteSTL(w, scene)
			})
		},
	}

	summaryCmd = &cobra.Command{
		Use:   "summary <files or directories...>",
		Short: "Print an order summary with one piece of each panel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(log.Options{Stderr: true, Level: zapcore.WarnLevel})
			defer log.Close()

			panels, err := loadPanels(cmd.Context(), args)
			if err != nil {
				return err
			}
			o := order.New()
			o.Add(panels...)
			out := termenv.NewOutput(cmd.OutOrStdout())
			writeSummary(cmd.OutOrStdout(), out, o.Summary())
			return nil
		},
	}
)

func init() {
	parseCmd.Flags().StringVarP(&outputFlag, "output", "o", outputAuto,
		"Output format: auto, text or json. auto prints JSON when stdout is not a terminal")
	parseCmd.Flags().BoolVarP(&holesFlag, "holes", "H", false, "List the holes of each panel in text output")

	renderCmd.Flags().StringVar(&viewFlag, "view", string(render.ViewCard), "SVG view: card or detail")
	renderCmd.Flags().StringVar(&outFlag, "out", "", "Output file, stdout when empty")
	preview3dCmd.Flags().StringVar(&outFlag, "out", "", "Output file, stdout when empty")
}

// resolveOutput turns the --output flag into text or json.
func resolveOutput(mode string, stdoutIsTerminal bool) (string, error) {
	switch strings.ToLower(mode) {
	case outputText:
		return outputText, nil
	case outputJSON:
		return outputJSON, nil
	case outputAuto, "":
		if stdoutIsTerminal {
			return outputText, nil
		}
		return outputJSON, nil
	default:
		return "", fmt.Errorf("invalid output format %q (must be auto, text or json)", mode)
	}
}

type panelJSON struct {
	*panel.Panel
	Format       string `json:"format"`
	SkippedHoles int    `json:"skipped_holes"`
}

func writePanelsJSON(w io.Writer, panels []*panel.Panel) error {
	out := make([]panelJSON, 0, len(panels))
	for _, p := range panels {
		out = append(out, panelJSON{Panel: p, Format: p.Format.String(), SkippedHoles: p.InvalidHoleCount()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writePanelsText(w io.Writer, panels []*panel.Panel, withHoles bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Format", "Height", "Width", "Holes", "Skipped"})
	for _, p := range panels {
		t.AppendRow(table.Row{
			p.Name, p.Format, ui.FormatMillimetres(p.Height), ui.FormatMillimetres(p.Width),
			len(p.ValidHoles()), p.InvalidHoleCount(),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()

	if !withHoles {
		return
	}
	for _, p := range panels {
		holes := p.ValidHoles()
		if len(holes) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", p.Name)
		ht := table.NewWriter()
		ht.SetOutputMirror(w)
		ht.SetStyle(table.StyleLight)
		ht.AppendHeader(table.Row{"#", "X", "Y", "Ø", "Depth"})
		for i, h := range holes {
			ht.AppendRow(table.Row{i + 1, ui.FormatMillimetres(h.X), ui.FormatMillimetres(h.Y),
				ui.FormatMillimetres(h.Diameter), ui.FormatMillimetres(h.Depth)})
		}
		ht.Render()
	}
}

func writeSummary(w io.Writer, out *termenv.Output, s order.Summary) {
	heading := out.String("Order summary").Bold().Foreground(out.Color("62"))
	fmt.Fprintf(w, "%s  %d panels, %d pieces\n", heading, len(s.Lines), s.Total)
	fmt.Fprintln(w, ui.SummaryTable(s, table.StyleLight))
}

// writeOutput writes to the named file, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.InfoLog.Printf("wrote %s", path)
	return nil
}
