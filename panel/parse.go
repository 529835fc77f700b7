package panel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Parse extracts a panel from the contents of a file. The name selects the
// format and becomes the panel name. Malformed content never errors; the
// only failure is an unsupported extension.
func Parse(name string, data []byte) (*Panel, error) {
	if !Supported(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}

	format := DetectFormat(name)
	text := string(data)

	var width, height float64
	var holes []Hole
	switch format {
	case FormatBPP:
		width, height, holes = parseBPP(text)
	case FormatCIX:
		width, height, holes = parseCIX(text)
	default:
		width, height, holes = parseMPR(text)
	}
	if holes == nil {
		holes = []Hole{}
	}

	return &Panel{
		Name:   filepath.Base(name),
		Format: format,
		Width:  width,
		Height: height,
		Holes:  holes,
	}, nil
}

// ParseFile reads and parses a single panel file.
func ParseFile(path string) (*Panel, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panel file: %w", err)
	}
	return Parse(path, data)
}

// ParseFiles parses many files concurrently. Unsupported files are skipped.
// The returned panels keep the order of paths.
func ParseFiles(ctx context.Context, paths []string) ([]*Panel, error) {
	results := make([]*Panel, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		if !Supported(path) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	panels := make([]*Panel, 0, len(results))
	for _, p := range results {
		if p != nil {
			panels = append(panels, p)
		}
	}
	return panels, nil
}

// CollectPaths expands the given arguments into supported panel files.
// Directories are scanned one level deep and their entries sorted by name.
func CollectPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			if Supported(arg) {
				paths = append(paths, arg)
			}
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !Supported(e.Name()) {
				continue
			}
			found = append(found, filepath.Join(arg, e.Name()))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return paths, nil
}
