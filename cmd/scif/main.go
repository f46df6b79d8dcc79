package main

import (
	"fmt"
	"image/gif"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/scif-go/scif"
	"github.com/scif-go/scif/fif"
	"github.com/scif-go/scif/stream"
	"github.com/urfave/cli/v2"
)

const defaultCatalog = "scif.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func main() {
	app := cli.NewApp()

	app.Name = "scif"
	app.Usage = "scientific image container utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"SCIF_DB"},
			Value:   filepath.Join(cwd, defaultCatalog),
			Usage:   "path to dataset catalog",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Print the metadata of a dataset",
			ArgsUsage: "FILE",
			Action:    info,
		},
		{
			Name:      "tiles",
			Usage:     "Read every plane of a dataset tile by tile",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:  "max-buffer",
					Value: scif.DefaultMaxBufferSize,
					Usage: "maximum decode buffer in bytes",
				},
			},
			Action: tiles,
		},
		{
			Name:      "convert",
			Usage:     "Convert a dataset to FIF",
			ArgsUsage: "SRC DST",
			Action:    convert,
		},
		{
			Name:      "export",
			Usage:     "Export a plane as a PNG or GIF preview",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:  "plane",
					Usage: "plane index to export",
				},
				&cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "maximum thumbnail width in pixels",
				},
			},
			Action: export,
		},
		{
			Name:      "scan",
			Usage:     "Scan a filesystem tree and catalog datasets",
			ArgsUsage: "DIRECTORY",
			Action:    scan,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s := scif.New(nil, nil, newLogger(c))

	reader, err := s.Initialize(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer reader.Close()

	meta := reader.Metadata()
	fmt.Printf("Format: %s\n", meta.FormatName())
	for i, im := range meta.Images() {
		fmt.Printf("Image %d: %s, %d bits per pixel, %d planes\n",
			i, im.PixelType, im.BitsPerPixel, im.PlaneCount())
		for _, a := range im.Axes {
			fmt.Printf("  %-7s %6d", a.Type, a.Length)
			if a.Unit != "" {
				fmt.Printf("  %g %s/sample", a.Scale, a.Unit)
			}
			fmt.Println()
		}
	}

	return nil
}

func tiles(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s := scif.New(nil, nil, newLogger(c))

	reader, err := s.Initialize(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer reader.Close()

	if r, ok := reader.(*fif.Reader); ok {
		r.SetMaxBufferSize(c.Int64("max-buffer"))
	}

	for i, im := range reader.Metadata().Images() {
		tileWidth, err := reader.OptimalTileWidth(i)
		if err != nil {
			return cli.Exit(err, 1)
		}
		tileHeight, err := reader.OptimalTileHeight(i)
		if err != nil {
			return cli.Exit(err, 1)
		}

		grid := scif.NewTileGrid(im.PlaneWidth(), im.PlaneHeight(), tileWidth, tileHeight)

		// Reuse one buffer for all full-size tiles of the image
		buf := make([]byte, scif.Region{Width: tileWidth, Height: tileHeight}.Bytes(im.PixelType))

		for p := int64(0); p < im.PlaneCount(); p++ {
			tile := 0
			if err := grid.ForEach(func(r scif.Region) error {
				b := buf[:r.Bytes(im.PixelType)]
				if _, err := reader.OpenRegion(i, p, r, b); err != nil {
					return err
				}
				tile++
				fmt.Printf("Image:%d Plane:%d Tile:%d -- %dx%d at (%d,%d)\n",
					i+1, p+1, tile, r.Width, r.Height, r.X, r.Y)
				return nil
			}); err != nil {
				return cli.Exit(err, 1)
			}
		}
	}

	return nil
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s := scif.New(nil, nil, newLogger(c))

	reader, err := s.Initialize(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer reader.Close()

	meta := fif.NewMetadata()
	if err := (fif.Translator{}).Translate(reader.Metadata().Images(), meta); err != nil {
		return cli.Exit(err, 1)
	}
	if err := meta.Populate(); err != nil {
		return cli.Exit(err, 1)
	}

	dst, err := stream.Create(c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}

	writer, err := fif.NewWriter(meta, dst)
	if err != nil {
		dst.Close()
		return cli.Exit(err, 1)
	}
	defer writer.Close()

	im := meta.Images()[0]
	for p := int64(0); p < im.PlaneCount(); p++ {
		plane, err := reader.OpenPlane(0, p)
		if err != nil {
			return cli.Exit(err, 1)
		}
		if err := writer.WritePlane(0, p, scif.WholePlane(im), plane.Bytes); err != nil {
			return cli.Exit(err, 1)
		}
	}

	return nil
}

func export(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	s := scif.New(nil, nil, newLogger(c))

	reader, err := s.Initialize(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer reader.Close()

	plane, err := reader.OpenPlane(0, c.Int64("plane"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	img, err := scif.Render(plane, reader.Metadata().Images()[0])
	if err != nil {
		return cli.Exit(err, 1)
	}
	img = scif.Thumbnail(img, c.Int("width"))

	out := c.Args().Get(1)
	f, err := os.Create(out)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(out)) {
	case ".gif":
		err = gif.Encode(f, scif.Paletted(img, 256), nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	catalog, err := scif.OpenCatalog(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer catalog.Close()

	s := scif.New(nil, catalog, newLogger(c))

	if err := s.Scan(c.Context, c.Args().First()); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}
