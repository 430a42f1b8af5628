package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/chazu/hitbox/pkg/recipe"
	"github.com/chazu/hitbox/pkg/server"
)

const usage = `Usage: hitbox <command> [flags]

Commands:
  generate   write DXF layers and a combined SVG
  preview    composite the art layers over artwork images
  serve      serve layer previews over HTTP
  layers     print the layer summary for a config

Run "hitbox <command> -h" for the flags of a command.
`

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func run(cmd string, args []string) error {
	app := NewApp()

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	config := fs.String("config", "", "config script (default: reference layout)")
	out := fs.String("out", "out", "output directory")

	switch cmd {
	case "generate":
		layers := fs.String("layer", "", "comma-separated layers to write (default: all)")
		fs.Parse(args)

		spec, err := app.LoadSpec(*config)
		if err != nil {
			return err
		}
		_, err = app.Generate(spec, *out, splitLayers(*layers)...)
		return err

	case "preview":
		art := fs.String("art", "", "artwork for the top layer")
		artBottom := fs.String("art-bottom", "", "artwork for the bottom layer")
		dpi := fs.Float64("dpi", 300, "raster resolution")
		sheet := fs.Bool("sheet", false, "fill the sheet material under the strokes")
		fs.Parse(args)

		if *art == "" && *artBottom == "" {
			return fmt.Errorf("need -art or -art-bottom")
		}
		spec, err := app.LoadSpec(*config)
		if err != nil {
			return err
		}
		_, err = app.Preview(spec, *out, PreviewOptions{
			Art:       *art,
			ArtBottom: *artBottom,
			DPI:       *dpi,
			Sheet:     *sheet,
		})
		return err

	case "serve":
		cfg := server.LoadConfig()
		fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
		fs.Float64Var(&cfg.DPI, "dpi", cfg.DPI, "default PNG resolution")
		fs.BoolVar(&cfg.Sheet, "sheet", cfg.Sheet, "fill the sheet material in PNGs")
		fs.Parse(args)

		spec, err := app.LoadSpec(*config)
		if err != nil {
			return err
		}
		return server.New(spec, cfg).Listen()

	case "layers":
		fs.Parse(args)

		src := ""
		if *config != "" {
			b, err := os.ReadFile(*config)
			if err != nil {
				return err
			}
			src = string(b)
		}
		res := app.Evaluate(src)
		fmt.Println(renderSummary(res))
		if len(res.Errors) > 0 {
			return fmt.Errorf("%d error(s)", len(res.Errors))
		}
		return nil

	case "-h", "--help", "help":
		fmt.Print(usage)
		fmt.Printf("\nLayers: %s\n", strings.Join(recipe.Names(), ", "))
		return nil
	}

	fmt.Fprint(os.Stderr, usage)
	return fmt.Errorf("unknown command %q", cmd)
}

// splitLayers parses a comma-separated -layer value, ignoring blanks around
// and between names.
func splitLayers(v string) []string {
	var names []string
	for _, n := range strings.Split(v, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
