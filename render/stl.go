package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"door-import/panel"
)

// WriteSTL writes the scene as a single ASCII STL solid.
func WriteSTL(w io.Writer, s Scene) error {
	bw := bufio.NewWriter(w)
	name := solidName(s.Name)

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range s.Triangles(DefaultSegments) {
		fmt.Fprintf(bw, "  facet normal %s\n", vec(t.Normal))
		fmt.Fprintln(bw, "    outer loop")
		for _, v := range t.Vertices {
			fmt.Fprintf(bw, "      vertex %s\n", vec(v))
		}
		fmt.Fprintln(bw, "    endloop")
		fmt.Fprintln(bw, "  endfacet")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write stl: %w", err)
	}
	return nil
}

func vec(v panel.Vec3) string {
	return fmt.Sprintf("%e %e %e", v.X, v.Y, v.Z)
}

// solidName keeps the header on one whitespace-free token.
func solidName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return "panel"
	}
	return name
}
