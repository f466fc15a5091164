package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/esimov/morph"
	"github.com/esimov/morph/utils"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"
	"gopkg.in/alecthomas/kingpin.v2"
)

const loadTimeout = 30 * time.Second

var (
	app        = kingpin.New("morph", "Morph between two images using delaunay triangulation.")
	configPath = app.Flag("config", "Morph configuration (YAML).").Short('c').Required().ExistingFile()
	preview    = app.Flag("preview", "Show the result inline in the terminal.").Bool()
	verbose    = app.Flag("verbose", "Log dropped frames and other diagnostics.").Short('v').Bool()

	meshCmd   = app.Command("mesh", "Draw the triangulation over one of the images.")
	meshSide  = meshCmd.Flag("side", "Which image to draw.").Default("source").Enum("source", "target")
	meshOut   = meshCmd.Flag("out", "Destination file.").Short('o').Default("mesh.png").String()
	wireframe = meshCmd.Flag("wireframe", "Wireframe mode: 0 filled, 1 filled with wireframe, 2 wireframe only.").Default("2").Int()
	lineWidth = meshCmd.Flag("width", "Wireframe line width.").Default("1").Float64()
	isSolid   = meshCmd.Flag("solid", "Solid line color.").Bool()
	grayscale = meshCmd.Flag("gray", "Convert to grayscale.").Bool()
	labels    = meshCmd.Flag("labels", "Label the points with their index.").Default("true").Bool()

	renderCmd = app.Command("render", "Render the morph as a sequence of frames.")
	frames    = renderCmd.Flag("frames", "Number of frames.").Short('n').Default("10").Int()
	renderOut = renderCmd.Flag("out", "Destination directory.").Short('o').Default("frames").String()

	playCmd  = app.Command("play", "Animate the morph; every key press counts as a click, q quits.")
	playOut  = playCmd.Flag("out", "File the last frame is saved to.").Short('o').Default("morph.png").String()
	duration = playCmd.Flag("duration", "Stop after this long (0 runs until q).").Default("0").Duration()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))
	au := utils.Colorizer(int(os.Stderr.Fd()))

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "morph: ", log.LstdFlags)
	}

	cfg, err := morph.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Unable to read config: %v", err)
	}

	s := utils.NewSpinner(os.Stderr, au)
	s.Start("Loading images...")
	pair, err := loadPair(cfg)
	s.Stop()
	if err != nil {
		log.Fatalf("Unable to load images: %v", err)
	}
	logger.Printf("canvas %.0fx%.0f, %d effective points", pair.Size.W, pair.Size.H, pair.Source.Len())

	switch cmd {
	case meshCmd.FullCommand():
		err = runMesh(pair, au)
	case renderCmd.FullCommand():
		err = runRender(pair, au)
	case playCmd.FullCommand():
		err = runPlay(pair, au, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n%s %v\n", au.Red("Error:"), err)
		os.Exit(1)
	}
}

func loadPair(cfg *morph.Config) (*morph.Pair, error) {
	src, err := cfg.Features(cfg.Source)
	if err != nil {
		return nil, err
	}
	dst, err := cfg.Features(cfg.Target)
	if err != nil {
		return nil, err
	}
	pair := morph.NewPair(src, dst, nil)

	a, closeA, err := openRaster(cfg.Resolve(cfg.Source.Image))
	if err != nil {
		return nil, err
	}
	defer closeA()
	b, closeB, err := openRaster(cfg.Resolve(cfg.Target.Image))
	if err != nil {
		return nil, err
	}
	defer closeB()

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := pair.Load(ctx, a, b, cfg.MaxSize); err != nil {
		return nil, err
	}
	return pair, nil
}

// openRaster starts decoding a local file or a downloaded URL. The returned
// func releases the file once decoding is done.
func openRaster(path string) (*morph.Raster, func(), error) {
	if morph.IsURL(path) {
		f, err := utils.DownloadImage(path)
		if err != nil {
			return nil, nil, err
		}
		return morph.LoadRaster(f), func() {
			f.Close()
			os.Remove(f.Name())
		}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to open source file")
	}
	return morph.LoadRaster(f), func() { f.Close() }, nil
}

func runMesh(pair *morph.Pair, au aurora.Aurora) error {
	raster, ps := pair.A, pair.Source
	if *meshSide == "target" {
		raster, ps = pair.B, pair.Target
	}
	m := &morph.Mesh{
		Wireframe: *wireframe,
		LineWidth: *lineWidth,
		IsSolid:   *isSolid,
		Grayscale: *grayscale,
		Labels:    *labels,
	}
	img, err := m.Draw(raster, ps)
	if err != nil {
		return err
	}
	if err := savePNG(*meshOut, img); err != nil {
		return err
	}
	fmt.Printf("Total number of %s triangles over %s points\n",
		au.Green(len(ps.Triangles())), au.Green(ps.Len()))
	fmt.Printf("Saved as: %s %s\n", filepath.Base(*meshOut), au.Green("✓"))
	showPreview(*meshOut)
	return nil
}

func runRender(pair *morph.Pair, au aurora.Aurora) error {
	if *frames < 2 {
		return errors.New("at least two frames are needed")
	}
	m, err := morph.NewMorph(pair, nil)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*renderOut, 0755); err != nil {
		return errors.Wrap(err, "unable to create destination directory")
	}

	s := utils.NewSpinner(os.Stderr, au)
	s.Start("Rendering morph frames...")
	start := time.Now()

	var last string
	for i := 0; i < *frames; i++ {
		t := float64(i) / float64(*frames-1)
		img, err := m.Render(t)
		if err != nil {
			s.Stop()
			return err
		}
		last = filepath.Join(*renderOut, fmt.Sprintf("frame_%03d.png", i))
		if err := savePNG(last, img); err != nil {
			s.Stop()
			return err
		}
	}
	s.Stop()

	fmt.Printf("Generated in: %s\n", au.Green(utils.FormatTime(time.Since(start))))
	fmt.Printf("Total number of %s frames over %s triangles\n",
		au.Green(*frames), au.Green(len(pair.Source.Triangles())))
	fmt.Printf("Saved to: %s %s\n", *renderOut, au.Green("✓"))
	showPreview(last)
	return nil
}

func savePNG(path string, img image.Image) error {
	fq, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create destination file")
	}
	defer fq.Close()

	if err := png.Encode(fq, img); err != nil {
		return errors.Wrap(err, "unable to encode png")
	}
	return nil
}

func showPreview(path string) {
	if !*preview || !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	imgcat.CatFile(path, os.Stdout)
}
