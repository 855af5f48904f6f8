// Command bitmapcopy loads an image into a BitMap, uploads it into an RGB
// texture with padded rows and writes the texture out as PNG.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/decode"
	"github.com/gogpu/bitmap/texture"
)

type config struct {
	input   string
	output  string
	compare string
	align   int
	width   int
	height  int
	verbose bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("bitmapcopy failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (config, error) {
	var conf config

	flagSet := pflag.NewFlagSet("bitmapcopy", pflag.ContinueOnError)
	flagSet.StringVarP(&conf.input, "input", "i", "", "image to load (png, jpeg, gif, bmp, tiff, webp)")
	flagSet.StringVarP(&conf.output, "output", "o", "out.png", "PNG file to write the texture to")
	flagSet.StringVar(&conf.compare, "compare", "", "second image to compare fingerprints against")
	flagSet.IntVar(&conf.align, "align", 4, "texture row alignment in bytes")
	flagSet.IntVar(&conf.width, "width", 0, "rescale to this width (requires --height)")
	flagSet.IntVar(&conf.height, "height", 0, "rescale to this height (requires --width)")
	flagSet.BoolVarP(&conf.verbose, "verbose", "v", false, "enable debug logging")

	if err := flagSet.Parse(args); err != nil {
		return config{}, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return config{}, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if conf.input == "" {
		return config{}, errors.New("--input is required")
	}
	if (conf.width > 0) != (conf.height > 0) {
		return config{}, errors.New("--width and --height must be given together")
	}
	return conf, nil
}

func run(args []string) error {
	conf, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if conf.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	bitmap.SetLogger(logger)

	bm, err := load(conf.input, conf.width, conf.height)
	if err != nil {
		return err
	}
	defer bm.Release()

	logger.Info("loaded", "file", conf.input, "width", bm.Width(), "height", bm.Height(),
		"fingerprint", bm.Fingerprint().String())

	tex, err := texture.New(bm.Width(), bm.Height(), conf.align)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := tex.Close(); closeErr != nil {
			logger.Error("could not close texture", "error", closeErr)
		}
	}()

	if err := bm.Upload(tex); err != nil {
		return fmt.Errorf("upload %q: %w", conf.input, err)
	}
	if err := tex.SavePNG(conf.output); err != nil {
		return err
	}
	logger.Info("written", "file", conf.output, "pitch", tex.Pitch())

	if conf.compare == "" {
		return nil
	}

	other, err := load(conf.compare, conf.width, conf.height)
	if err != nil {
		return err
	}
	defer other.Release()

	logger.Info("compared",
		"file", conf.compare,
		"fingerprint", other.Fingerprint().String(),
		"same_fingerprint", bm.SameFingerprint(other),
		"same_content", bm.ContentEqual(other))
	return nil
}

func load(path string, width, height int) (*bitmap.BitMap, error) {
	img, err := decode.Load(path)
	if err != nil {
		return nil, err
	}
	if width > 0 && height > 0 {
		img, err = decode.Scale(img, width, height)
		if err != nil {
			return nil, err
		}
	}
	return bitmap.FromDecoded(img)
}
