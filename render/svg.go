package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/polypath/session"
	"github.com/pkg/errors"
)

// WriteSVG writes the snapshot as a standalone SVG document in local
// coordinates. Triangles are only included while the snapshot shows the
// triangulation.
func WriteSVG(w io.Writer, snapshot session.Snapshot, opts Options) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	b := snapshotBounds(snapshot)
	pad := opts.Padding / opts.Scale
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(b.minX-pad), num(b.minY-pad), num(b.maxX-b.minX+2*pad), num(b.maxY-b.minY+2*pad),
		num(opts.Scale*(b.maxX-b.minX)+2*opts.Padding), num(opts.Scale*(b.maxY-b.minY)+2*opts.Padding))
	stroke := num(opts.LineWidth / opts.Scale)

	if len(snapshot.Vertices) > 0 {
		element := "polyline"
		fill := "none"
		if snapshot.Closed {
			element = "polygon"
			fill = "#004d00"
		}
		fmt.Fprintf(out, `  <%s points="%s" fill="%s" stroke="#00ffff" stroke-width="%s" />`+"\n",
			element, points(snapshot.Vertices), fill, stroke)
	}
	if len(snapshot.SubPolygon) > 2 {
		fmt.Fprintf(out, `  <polygon class="corridor" points="%s" fill="#4d33ff" fill-opacity="0.5" />`+"\n", points(snapshot.SubPolygon))
	}
	if snapshot.Mesh != nil {
		for i := 0; i < snapshot.Mesh.Len(); i++ {
			if outline := snapshot.TriangleOutline(i); outline != "" {
				fmt.Fprintf(out, `  <polyline class="triangle" points="%s" fill="none" stroke="#00ff00" stroke-width="%s" />`+"\n", outline, stroke)
			}
		}
		if snapshot.ShowDual {
			for _, edge := range snapshot.Mesh.DualEdges() {
				from := snapshot.Mesh.Triangles[edge.From].Center
				to := snapshot.Mesh.Triangles[edge.To].Center
				fmt.Fprintf(out, `  <line class="dual" x1="%s" y1="%s" x2="%s" y2="%s" stroke="#ffff00" stroke-width="%s" />`+"\n",
					num(from.X), num(from.Y), num(to.X), num(to.Y), stroke)
			}
		}
	}
	if len(snapshot.Path) > 1 {
		fmt.Fprintf(out, `  <polyline class="path" points="%s" fill="none" stroke="#ff4d4d" stroke-width="%s" />`+"\n", points(snapshot.Path), stroke)
	}
	for _, p := range []*Point{snapshot.PointA, snapshot.PointB} {
		if p != nil {
			fmt.Fprintf(out, `  <circle class="endpoint" cx="%s" cy="%s" r="%s" fill="#ff4d4d" />`+"\n", num(p.X), num(p.Y), num(3*opts.LineWidth/opts.Scale))
		}
	}
	fmt.Fprintln(out, "</svg>")
	return errors.Wrap(out.Flush(), "writing svg")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func points(ps []Point) string {
	pairs := make([]string, len(ps))
	for i, p := range ps {
		pairs[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(pairs, " ")
}

// ReadSVGPolygon returns the points of the first polygon (or polyline) in an
// SVG document, in document order. Transforms are not applied, and the document
// is not validated beyond being well formed XML.
func ReadSVGPolygon(r io.Reader) ([]Point, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, errors.Wrap(err, "parsing svg")
	}
	elements := root.FindAll("polygon")
	if len(elements) == 0 {
		elements = root.FindAll("polyline")
	}
	if len(elements) == 0 {
		return nil, errors.New("no polygon found in svg")
	}
	return ParsePoints(elements[0].Attributes["points"])
}

// ParsePoints parses an SVG points attribute. Coordinates may be separated by
// commas, whitespace, or both.
func ParsePoints(attribute string) ([]Point, error) {
	fields := strings.FieldsFunc(attribute, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, errors.Errorf("odd number of coordinates in %q", attribute)
	}
	result := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid x value %q", fields[i])
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid y value %q", fields[i+1])
		}
		result = append(result, Point{X: x, Y: y})
	}
	// A closed outline written out explicitly repeats its first point
	if n := len(result); n > 1 && result[0] == result[n-1] {
		result = result[:n-1]
	}
	return result, nil
}
