package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/argp"
	"github.com/tdewolff/parse/v2/strconv"
	"github.com/tdewolff/tangential"
	"github.com/tdewolff/tangential/svg"
)

type Fill struct {
	Offset        float64 `short:"d" default:"1.0" desc:"Distance between rings"`
	Join          string  `short:"j" default:"round" desc:"Join style: round, miter or bevel"`
	MiterLimit    float64 `default:"10.0" desc:"Miter limit"`
	Stitch        float64 `short:"s" default:"2.5" desc:"Maximum stitch distance"`
	MinStitch     float64 `default:"0.5" desc:"Minimum stitch distance"`
	Strategy      string  `short:"t" default:"inner-to-outer" desc:"Strategy: inner-to-outer or spiral"`
	Start         string  `default:"0,0" desc:"Starting point as x,y"`
	OffsetByHalf  bool    `desc:"Shift the stitches of every other ring by half"`
	AvoidCrossing bool    `desc:"Avoid self crossings when connecting rings"`
	Anticlockwise bool    `desc:"Wind outer rings counter clockwise"`
	Fallback      bool    `desc:"Use inner-to-outer when a spiral is not possible"`
	Path          string  `short:"p" desc:"SVG path data instead of an input file"`
	Output        string  `short:"o" desc:"Output file (.svg, .svgz, .geojson, .json or text), default is stdout"`
	Verbose       bool    `short:"v" desc:"Verbose logging"`
	Input         string  `index:"0" desc:"Input file with GeoJSON or SVG path data"`
}

type Tree struct {
	Offset  float64 `short:"d" default:"1.0" desc:"Distance between rings"`
	Join    string  `short:"j" default:"round" desc:"Join style: round, miter or bevel"`
	Path    string  `short:"p" desc:"SVG path data instead of an input file"`
	Verbose bool    `short:"v" desc:"Verbose logging"`
	Input   string  `index:"0" desc:"Input file with GeoJSON or SVG path data"`
}

func main() {
	root := argp.NewCmd(&Fill{}, "Tangential fill stitch generator")
	root.AddCmd(&Tree{}, "tree", "Print the tree of offset rings")
	root.Parse()
	root.PrintHelp()
}

func setVerbose(verbose bool) {
	if verbose {
		tangential.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

func readPolygons(input, path string) ([]orb.Polygon, error) {
	if path != "" {
		poly, err := tangential.ParseSVGPolygon(path)
		if err != nil {
			return nil, err
		}
		return []orb.Polygon{poly}, nil
	} else if input == "" {
		return nil, argp.ShowUsage
	}

	var r io.Reader = os.Stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if trimmed := bytes.TrimSpace(data); 0 < len(trimmed) && trimmed[0] == '{' {
		return tangential.ReadGeoJSON(bytes.NewReader(data))
	}
	poly, err := tangential.ParseSVGPolygon(string(data))
	if err != nil {
		return nil, err
	}
	return []orb.Polygon{poly}, nil
}

func parsePoint(s string) (tangential.Point, error) {
	b := []byte(strings.TrimSpace(s))
	x, n := strconv.ParseFloat(b)
	if n == 0 {
		return tangential.Point{}, fmt.Errorf("bad point %q", s)
	}
	b = bytes.TrimLeft(b[n:], " ,")
	y, m := strconv.ParseFloat(b)
	if m == 0 || m != len(b) {
		return tangential.Point{}, fmt.Errorf("bad point %q", s)
	}
	return tangential.Point{X: x, Y: y}, nil
}

func (cmd *Fill) options() (tangential.Options, error) {
	opts := tangential.DefaultOptions()
	opts.Offset = cmd.Offset
	opts.MiterLimit = cmd.MiterLimit
	opts.StitchDistance = cmd.Stitch
	opts.MinStitchDistance = cmd.MinStitch
	opts.OffsetByHalf = cmd.OffsetByHalf
	opts.AvoidSelfCrossing = cmd.AvoidCrossing
	opts.Clockwise = !cmd.Anticlockwise

	var err error
	if opts.JoinStyle, err = tangential.ParseJoinStyle(cmd.Join); err != nil {
		return opts, err
	} else if opts.Strategy, err = tangential.ParseStrategy(cmd.Strategy); err != nil {
		return opts, err
	} else if opts.StartingPoint, err = parsePoint(cmd.Start); err != nil {
		return opts, err
	}
	return opts, nil
}

func (cmd *Fill) Run() error {
	setVerbose(cmd.Verbose)
	opts, err := cmd.options()
	if err != nil {
		return err
	}
	polys, err := readPolygons(cmd.Input, cmd.Path)
	if err != nil {
		return err
	}

	results := []*tangential.Result{}
	for i, poly := range polys {
		res, err := tangential.Fill(poly, opts)
		if cmd.Fallback && (errors.Is(err, tangential.ErrPrecondition) || errors.Is(err, tangential.ErrSpiralInfeasible)) {
			fmt.Fprintf(os.Stderr, "WARNING: polygon %d: %v, falling back to %v\n", i, err, tangential.InnerToOuter)
			fallback := opts
			fallback.Strategy = tangential.InnerToOuter
			res, err = tangential.Fill(poly, fallback)
		}
		if err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
		results = append(results, res)
	}

	w := io.Writer(os.Stdout)
	if cmd.Output != "" && cmd.Output != "-" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeResults(w, strings.ToLower(filepath.Ext(cmd.Output)), results)
}

func writeResults(w io.Writer, ext string, results []*tangential.Result) error {
	switch ext {
	case ".svg", ".svgz":
		opts := svg.DefaultOptions
		if ext == ".svgz" {
			opts.Compression = -1
		}
		if len(results) == 1 {
			return svg.Writer(w, results[0], &opts)
		}
		merged := &tangential.Result{}
		for _, res := range results {
			merged.Points = append(merged.Points, res.Points...)
			merged.Origins = append(merged.Origins, res.Origins...)
		}
		return svg.Writer(w, merged, &opts)
	case ".geojson", ".json":
		fc := geojson.NewFeatureCollection()
		for _, res := range results {
			fc.Append(res.GeoJSON())
		}
		data, err := fc.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	for i, res := range results {
		if 0 < i {
			fmt.Fprintln(w)
		}
		for _, p := range res.Points {
			if _, err := fmt.Fprintf(w, "%v %v\n", p.X, p.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cmd *Tree) Run() error {
	setVerbose(cmd.Verbose)
	opts := tangential.DefaultOptions()
	opts.Offset = cmd.Offset
	var err error
	if opts.JoinStyle, err = tangential.ParseJoinStyle(cmd.Join); err != nil {
		return err
	}
	polys, err := readPolygons(cmd.Input, cmd.Path)
	if err != nil {
		return err
	}

	for i, poly := range polys {
		t, err := tangential.BuildTree(poly, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Polygon %d: %d rings, %d leaves, depth %d\n", i, t.Len(), len(t.Leaves()), t.Depth())
		fmt.Print(t)
	}
	return nil
}
