package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/render"
	"github.com/pkg/errors"
)

type Point = advanced.Point

// Read the polygon from an SVG file if one is given, and otherwise from in as
// newline separated points in the form "x y". Input stops at the first blank
// line after any points, so only the first polygon is read.
func readPolygon(svgPath string, in io.Reader) ([]Point, error) {
	if svgPath != "" {
		f, err := os.Open(svgPath)
		if err != nil {
			return nil, errors.Wrap(err, "opening svg")
		}
		defer f.Close()
		return render.ReadSVGPolygon(f)
	}

	var points []Point
	scanner := bufio.NewScanner(in)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(points) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNumber)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading points")
	}
	// A closed outline written out explicitly repeats its first point
	if n := len(points); n > 1 && points[0] == points[n-1] {
		points = points[:n-1]
	}
	return points, nil
}

func parsePoint(line string) (Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, errors.Wrap(err, "x")
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, errors.Wrap(err, "y")
	}
	return Point{X: x, Y: y}, nil
}

// Parse an "x,y" flag value.
func parseCoordinate(value string) (Point, error) {
	points, err := render.ParsePoints(value)
	if err != nil {
		return Point{}, err
	}
	if len(points) != 1 {
		return Point{}, errors.Errorf("expected one \"x,y\" point, got %q", value)
	}
	return points[0], nil
}
