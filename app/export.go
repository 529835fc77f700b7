package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"door-import/config"
	"door-import/panel"
	"door-import/render"
	"door-import/ui/overlay"
)

// exportPath names the output file of a panel export inside dir.
func exportPath(dir string, p *panel.Panel, format overlay.ExportFormat) string {
	base := filepath.Base(p.DisplayName())
	switch format {
	case overlay.ExportDetailSVG:
		base += "-detail.svg"
	case overlay.ExportSTL:
		base += ".stl"
	default:
		base += ".svg"
	}
	return filepath.Join(dir, base)
}

// exportPanel writes p in the given format to the configured output
// directory and returns the written path.
func exportPanel(p *panel.Panel, format overlay.ExportFormat, cfg *config.Config) (string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := exportPath(cfg.OutputDir, p, format)

	var write func(io.Writer) error
	switch format {
	case overlay.ExportCardSVG:
		write = func(w io.Writer) error { return render.WriteCardSVG(w, p, cfg.CardHeight) }
	case overlay.ExportDetailSVG:
		write = func(w io.Writer) error { return render.WriteDetailSVG(w, p) }
	case overlay.ExportSTL:
		write = func(w io.Writer) error { return render.WriteSTL(w, render.BuildSceneWithDepth(p, cfg.DefaultDepth)) }
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to export %s: %w", p.Name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// holeList formats the drawable holes of p one per line, for the clipboard.
// It returns the text and the number of holes.
func holeList(p *panel.Panel) (string, int) {
	holes := p.ValidHoles()
	var b strings.Builder
	for i, h := range holes {
		fmt.Fprintf(&b, "%d\t%s\n", i+1, render.HoleTitle(h))
	}
	return b.String(), len(holes)
}
