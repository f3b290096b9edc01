package main

import (
	"bufio"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mad-wfc/internal/config"
	"mad-wfc/internal/render"
	"mad-wfc/internal/telemetry"
	"mad-wfc/pkg/wfc"
	"mad-wfc/pkg/wfc/grid"
)

type runOptions struct {
	seed    int64
	steps   int
	pngPath string
	scale   int
	quiet   bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Solve the job once and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("seed") {
				cfg.Seed = opts.seed
			}
			if cmd.Flags().Changed("steps") {
				cfg.StepLimit = opts.steps
			}
			return runOnce(cmd.OutOrStdout(), root, cfg, opts)
		},
	}
	f := cmd.Flags()
	f.Int64Var(&opts.seed, "seed", 0, "random seed (default: the job's seed)")
	f.IntVar(&opts.steps, "steps", 0, "observation budget, 0 for unlimited (default: the job's limit)")
	f.StringVarP(&opts.pngPath, "png", "o", "", "also write the output as a PNG image")
	f.IntVar(&opts.scale, "scale", 8, "PNG pixels per cell")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the ASCII output")
	return cmd
}

func runOnce(w io.Writer, root *rootOptions, cfg config.Config, opts *runOptions) error {
	alg, err := cfg.Build()
	if err != nil {
		return err
	}
	alg.Subscribe(telemetry.NewLogObserver(root.logger))

	out, runErr := alg.Run(cfg.Seed, cfg.StepLimit)
	pixels := alg.ConstructOutput()
	if !opts.quiet {
		if err := writeASCII(w, cfg, pixels); err != nil {
			return err
		}
	}
	if opts.pngPath != "" {
		if err := writePNG(opts.pngPath, cfg, pixels, opts.scale); err != nil {
			return err
		}
		root.logger.Info("wrote image", "path", opts.pngPath)
	}
	if out == wfc.OutcomeFailed {
		return fmt.Errorf("seed %d: %w", cfg.Seed, runErr)
	}
	root.logger.Info("done", "seed", cfg.Seed, "outcome", out.String())
	return nil
}

func writeASCII(w io.Writer, cfg config.Config, pixels []int) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			bw.WriteByte(cfg.Symbol(pixels[y*cfg.Width+x]))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// paletteIndices maps output pixels onto cfg's display palette.
func paletteIndices(cfg config.Config, pixels []int) ([]uint8, []color.RGBA) {
	palette := cfg.DisplayPalette()
	undecided := uint8(len(palette) - 2)
	contradicted := uint8(len(palette) - 1)
	cells := make([]uint8, len(pixels))
	for i, px := range pixels {
		switch {
		case px == grid.Contradicted:
			cells[i] = contradicted
		case px < 0 || px >= len(cfg.Legend):
			cells[i] = undecided
		default:
			cells[i] = uint8(px)
		}
	}
	return cells, palette
}

func writePNG(path string, cfg config.Config, pixels []int, scale int) error {
	cells, palette := paletteIndices(cfg, pixels)
	img := render.PaletteImage(cells, cfg.Width, cfg.Height, scale, palette)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
