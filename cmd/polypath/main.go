// Command polypath finds shortest paths inside polygons, renders them, and
// serves interactive drawing sessions over WebSockets.
//
//	polypath solve --from 1,1 --to 5,5 < polygon.txt
//	polypath render --svg polygon.svg --png out.png
//	polypath serve --addr :9000
//
// Polygons on stdin are newline separated points in the form "x y". They may
// wind either way and must be simple.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/polypath"
	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/config"
	"github.com/osuushi/polypath/render"
	"github.com/osuushi/polypath/server"
	"github.com/osuushi/polypath/session"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("polypath", "Shortest paths inside simple polygons.")
	configPath = app.Flag("config", "YAML config file.").Short('c').String()
	logLevel   = app.Flag("log-level", "Log level.").Default("warn").Enum("debug", "info", "warn", "error")

	solveCmd       = app.Command("solve", "Find the shortest path between two points inside a polygon.")
	solveSVG       = solveCmd.Flag("svg", "Read the polygon from an SVG file instead of stdin.").String()
	solveFrom      = solveCmd.Flag("from", "Start point, as x,y.").Required().String()
	solveTo        = solveCmd.Flag("to", "End point, as x,y.").Required().String()
	solveNoColor   = solveCmd.Flag("no-color", "Plain output.").Bool()
	solveDebug     = solveCmd.Flag("debug", "Dump the mesh and route to stderr.").Bool()
	solveOutput    = newOutputFlags(solveCmd)
	solveTriangles = solveCmd.Flag("triangulator", "auto, earclip, or monotone. Overrides the config.").String()

	renderCmd    = app.Command("render", "Triangulate a polygon and draw it.")
	renderSVG    = renderCmd.Flag("svg", "Read the polygon from an SVG file instead of stdin.").String()
	renderOutput = newOutputFlags(renderCmd)

	serveCmd  = app.Command("serve", "Serve drawing sessions over WebSockets.")
	serveAddr = serveCmd.Flag("addr", "Listen address. Overrides the config.").String()
)

type outputFlags struct {
	png     *string
	svg     *string
	preview *bool
	flipY   *bool
	labels  *bool
}

func newOutputFlags(cmd *kingpin.CmdClause) outputFlags {
	return outputFlags{
		png:     cmd.Flag("png", "Write a PNG image.").String(),
		svg:     cmd.Flag("svg-out", "Write an SVG document.").String(),
		preview: cmd.Flag("preview", "Show the image in the terminal (iTerm only).").Bool(),
		flipY:   cmd.Flag("flip-y", "Draw with the origin at the bottom left.").Bool(),
		labels:  cmd.Flag("labels", "Label triangles with their indexes.").Bool(),
	}
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))
	setupLogging(*logLevel)

	c, err := config.Load(*configPath)
	app.FatalIfError(err, "")

	switch command {
	case solveCmd.FullCommand():
		err = solve(c, os.Stdin, os.Stdout)
	case renderCmd.FullCommand():
		err = renderPolygon(c, os.Stdin)
	case serveCmd.FullCommand():
		err = serve(c)
	}
	app.FatalIfError(err, "%s", command)
}

func setupLogging(level string) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelWarn
	}
	polypath.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func solve(c config.Config, in io.Reader, out io.Writer) error {
	if *solveTriangles != "" {
		c.Session.Triangulator = *solveTriangles
	}
	triangulate, err := c.Session.TriangulatorFunc()
	if err != nil {
		return err
	}
	from, err := parseCoordinate(*solveFrom)
	if err != nil {
		return errors.Wrap(err, "--from")
	}
	to, err := parseCoordinate(*solveTo)
	if err != nil {
		return errors.Wrap(err, "--to")
	}
	polygon, err := readPolygon(*solveSVG, in)
	if err != nil {
		return err
	}

	mesh, err := advanced.BuildMesh(polygon, triangulate, nil)
	if err != nil {
		return err
	}
	route, err := mesh.Route(from, to)
	if err != nil {
		return err
	}

	au := aurora.NewAurora(!*solveNoColor)
	if err := printPath(out, au, route.Path); err != nil {
		return err
	}
	if *solveDebug {
		if err := mesh.Dump(os.Stderr, !*solveNoColor, route); err != nil {
			return err
		}
	}

	outline, err := mesh.SubPolygon(route.Corridor)
	if err != nil {
		return err
	}
	snapshot := session.Snapshot{
		Mode:              session.Done,
		Vertices:          polygon,
		Closed:            true,
		Done:              true,
		PointA:            &from,
		PointB:            &to,
		Mesh:              mesh,
		Centers:           mesh.Centers(),
		Corridor:          route.Corridor,
		Portals:           route.Portals,
		Path:              route.Path,
		ShowDual:          c.Render.ShowDual,
		ShowTriangulation: c.Render.ShowTriangulation,
	}
	for _, i := range outline {
		snapshot.SubPolygon = append(snapshot.SubPolygon, mesh.Vertices[i])
	}
	return writeOutputs(c.Render, solveOutput, snapshot)
}

func printPath(out io.Writer, au aurora.Aurora, path []Point) error {
	steps := make([]string, len(path))
	for i, p := range path {
		steps[i] = fmt.Sprintf("%g %g", p.X, p.Y)
	}
	if _, err := fmt.Fprintln(out, strings.Join(steps, "\n")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%s %s\n", au.Gray(12, "length"), au.Bold(fmt.Sprintf("%.4f", advanced.PathLength(path))))
	return err
}

func renderPolygon(c config.Config, in io.Reader) error {
	polygon, err := readPolygon(*renderSVG, in)
	if err != nil {
		return err
	}
	triangulate, err := c.Session.TriangulatorFunc()
	if err != nil {
		return err
	}
	mesh, err := advanced.BuildMesh(polygon, triangulate, nil)
	if err != nil {
		return err
	}
	snapshot := session.Snapshot{
		Mode:              session.AwaitingPointA,
		Vertices:          polygon,
		Closed:            true,
		Mesh:              mesh,
		Centers:           mesh.Centers(),
		ShowDual:          c.Render.ShowDual,
		ShowTriangulation: true,
	}
	return writeOutputs(c.Render, renderOutput, snapshot)
}

func writeOutputs(rc config.RenderConfig, flags outputFlags, snapshot session.Snapshot) error {
	opts := render.Options{
		Scale:     rc.Scale,
		Padding:   rc.Padding,
		LineWidth: rc.LineWidth,
		FlipY:     *flags.flipY,
		Labels:    *flags.labels,
	}
	if *flags.png != "" {
		if err := render.SavePNG(*flags.png, snapshot, opts); err != nil {
			return err
		}
	}
	if *flags.svg != "" {
		f, err := os.Create(*flags.svg)
		if err != nil {
			return errors.Wrap(err, "creating svg")
		}
		err = render.WriteSVG(f, snapshot, opts)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return err
		}
	}
	if *flags.preview {
		return render.Preview(os.Stdout, snapshot, opts)
	}
	return nil
}

func serve(c config.Config) error {
	if *serveAddr != "" {
		c.Server.Addr = *serveAddr
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return server.New(c.Server, c.Session.Options()...).ListenAndServe(ctx)
}
