// Command polybool applies boolean set operations to polygon files and
// inspects, hulls, strips and renders them. Formats are chosen by file
// extension: .json (canonical form), .wkt, .svg, .bin.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/earcliff/polybool"
	"github.com/earcliff/polybool/geom"
	"github.com/earcliff/polybool/polyio"
)

var (
	app = kingpin.New("polybool", "Boolean set operations on 2D polygons.")

	opCmd    = app.Command("op", "Apply a boolean operation to two polygon files.")
	opName   = opCmd.Arg("operation", "union, intersection, difference or xor.").Required().Enum("union", "intersection", "difference", "xor")
	opFileA  = opCmd.Arg("a", "First operand file.").Required().ExistingFile()
	opFileB  = opCmd.Arg("b", "Second operand file.").Required().ExistingFile()
	opOut    = opCmd.Flag("out", "Output file; defaults to stdout as JSON.").Short('o').String()

	infoCmd  = app.Command("info", "Print area, centroid, bounding box and counts.")
	infoFile = infoCmd.Arg("file", "Polygon file.").Required().ExistingFile()

	hullCmd  = app.Command("hull", "Compute the convex hull.")
	hullFile = hullCmd.Arg("file", "Polygon file.").Required().ExistingFile()
	hullOut  = hullCmd.Flag("out", "Output file; defaults to stdout as JSON.").Short('o').String()

	stripCmd  = app.Command("tristrip", "Decompose a hole-free polygon into triangle strips.")
	stripFile = stripCmd.Arg("file", "Polygon file.").Required().ExistingFile()
	stripOut  = stripCmd.Flag("out", "Output file (gnuplot triangles); defaults to stdout.").Short('o').String()

	renderCmd   = app.Command("render", "Render polygon files to a PNG.")
	renderFiles = renderCmd.Arg("file", "Polygon files.").Required().ExistingFiles()
	renderOut   = renderCmd.Flag("out", "Output PNG path.").Short('o').Default("polybool.png").String()
	renderScale = renderCmd.Flag("scale", "Pixels per coordinate unit.").Default("10").Float64()
	renderCat   = renderCmd.Flag("cat", "Print the image inline (iTerm2 protocol).").Bool()
)

func main() {
	log.SetFlags(0)
	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case opCmd.FullCommand():
		runOp()
	case infoCmd.FullCommand():
		runInfo()
	case hullCmd.FullCommand():
		runHull()
	case stripCmd.FullCommand():
		runTristrip()
	case renderCmd.FullCommand():
		runRender()
	}
}

func runOp() {
	a := load(*opFileA)
	b := load(*opFileB)
	var op polybool.Op
	switch *opName {
	case "union":
		op = polybool.OpUnion
	case "intersection":
		op = polybool.OpIntersection
	case "difference":
		op = polybool.OpDifference
	case "xor":
		op = polybool.OpSymmetricDifference
	}
	result, err := polybool.Clip(op, a, b)
	if err != nil {
		log.Fatalf("%s failed: %v", *opName, err)
	}
	save(*opOut, result)
}

func runInfo() {
	p := load(*infoFile)
	bb := p.BoundingBox()
	center := p.Centroid()
	fmt.Printf("contours:  %d (%d holes)\n", p.Len(), countHoles(p))
	fmt.Printf("vertices:  %d\n", p.NumPoints())
	fmt.Printf("area:      %g\n", p.Area())
	fmt.Printf("centroid:  (%g, %g)\n", center.X, center.Y)
	fmt.Printf("bbox:      (%g, %g) – (%g, %g)\n", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY)
}

func runHull() {
	p := load(*hullFile)
	save(*hullOut, polybool.ConvexHull(p))
}

func runTristrip() {
	p := load(*stripFile)
	strips, err := polybool.TriStrip(p)
	if err != nil {
		log.Fatalf("tristrip failed: %v", err)
	}
	out := os.Stdout
	if *stripOut != "" {
		f, err := os.Create(*stripOut)
		if err != nil {
			log.Fatalf("creating %s: %v", *stripOut, err)
		}
		defer f.Close()
		out = f
	}
	if err := polyio.WriteGnuplotTriangles(out, strips...); err != nil {
		log.Fatalf("writing strips: %v", err)
	}
}

func runRender() {
	polys := make([]*geom.Polygon, 0, len(*renderFiles))
	for _, f := range *renderFiles {
		polys = append(polys, load(f))
	}
	if err := geom.RenderPNG(*renderOut, *renderScale, polys...); err != nil {
		log.Fatalf("rendering: %v", err)
	}
	if *renderCat {
		geom.CatPNG(*renderOut)
	}
}

func countHoles(p *geom.Polygon) int {
	n := 0
	for i := range p.Contours {
		if p.Contours[i].Hole {
			n++
		}
	}
	return n
}

func load(path string) *geom.Polygon {
	p, err := readFile(path)
	if err != nil {
		log.Fatalf("reading %s: %v", path, err)
	}
	return p
}

func readFile(path string) (*geom.Polygon, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return polyio.UnmarshalJSON(data)
	case ".wkt":
		return polyio.ReadWKT(string(data))
	case ".svg":
		return polyio.ReadSVG(strings.NewReader(string(data)))
	case ".bin":
		return polyio.DecodeBinary(data)
	}
	return nil, errors.Errorf("unknown polygon format %q", filepath.Ext(path))
}

func save(path string, p *geom.Polygon) {
	if path == "" {
		if err := polyio.WriteJSON(os.Stdout, p); err != nil {
			log.Fatalf("writing result: %v", err)
		}
		return
	}
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		data, merr := polyio.MarshalJSON(p)
		if merr != nil {
			log.Fatalf("encoding result: %v", merr)
		}
		err = ioutil.WriteFile(path, append(data, '\n'), 0644)
	case ".wkt":
		err = ioutil.WriteFile(path, []byte(polyio.WriteWKT(p)+"\n"), 0644)
	case ".svg":
		f, ferr := os.Create(path)
		if ferr != nil {
			log.Fatalf("creating %s: %v", path, ferr)
		}
		defer f.Close()
		err = polyio.WriteSVG(f, 0, p)
	case ".bin":
		err = ioutil.WriteFile(path, polyio.EncodeBinary(p), 0644)
	case ".gp":
		f, ferr := os.Create(path)
		if ferr != nil {
			log.Fatalf("creating %s: %v", path, ferr)
		}
		defer f.Close()
		err = polyio.WriteGnuplot(f, p)
	default:
		log.Fatalf("unknown output format %q", filepath.Ext(path))
	}
	if err != nil {
		log.Fatalf("writing %s: %v", path, err)
	}
}
