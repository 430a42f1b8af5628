// Package server serves panel layers over HTTP for quick previews while
// tuning a config script.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/chazu/hitbox/pkg/engine"
	"github.com/chazu/hitbox/pkg/export"
	"github.com/chazu/hitbox/pkg/kernel/sdfx"
	"github.com/chazu/hitbox/pkg/panel"
	"github.com/chazu/hitbox/pkg/recipe"
	"github.com/chazu/hitbox/pkg/render"
	"github.com/chazu/hitbox/pkg/shape"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// Server renders layers of the current spec on request. POST /spec
// replaces the spec with one evaluated from a config script.
type Server struct {
	cfg Config
	app *fiber.App

	mu   sync.RWMutex
	spec panel.Spec
}

// New builds the fiber app for spec. The spec must be valid.
func New(spec panel.Spec, cfg Config) *Server {
	s := &Server{cfg: cfg, spec: spec.Clone()}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		AppName:      "hitbox preview",
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/layers", s.listLayers)
	app.Get("/layers/:name/svg", s.layerSVG)
	app.Get("/layers/:name/png", s.layerPNG)
	app.Get("/spec", s.getSpec)
	app.Post("/spec", s.putSpec)

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving on the configured address.
func (s *Server) Listen() error {
	log.Printf("hitbox preview listening on %s", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) current() panel.Spec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spec.Clone()
}

type layerInfo struct {
	Name       string         `json:"name"`
	Thickness  float64        `json:"thickness_mm,omitempty"`
	Structural bool           `json:"structural"`
	Shapes     int            `json:"shapes"`
	Kinds      map[string]int `json:"kinds"`
}

func (s *Server) listLayers(c fiber.Ctx) error {
	d, err := recipe.Assemble(s.current())
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]layerInfo, 0, len(d.Layers))
	for _, l := range d.Layers {
		info := layerInfo{Name: l.Name, Shapes: len(l.Shapes), Kinds: make(map[string]int)}
		if r, ok := recipe.Lookup(l.Name); ok {
			info.Thickness = r.Thickness
			info.Structural = r.Structural
		}
		for k, n := range l.Count() {
			info.Kinds[k.String()] = n
		}
		out = append(out, info)
	}
	return c.JSON(fiber.Map{"design": d.ID, "layers": out})
}

// layer builds the requested layer, writing the error response itself when
// the build fails.
func (s *Server) layer(c fiber.Ctx) (*shape.Layer, panel.Spec, bool, error) {
	spec := s.current()
	l, err := recipe.Build(spec, c.Params("name"))
	if errors.Is(err, recipe.ErrUnknownLayer) {
		return nil, spec, false, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":  err.Error(),
			"layers": recipe.Names(),
		})
	}
	if err != nil {
		log.Printf("build %s: %v", c.Params("name"), err)
		return nil, spec, false, c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return l, spec, true, nil
}

func (s *Server) layerSVG(c fiber.Ctx) error {
	l, spec, ok, err := s.layer(c)
	if !ok {
		return err
	}

	var buf bytes.Buffer
	sink := export.NewSVG(&buf, spec)
	if err := export.WriteLayer(sink, l); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := sink.Finalize(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (s *Server) layerPNG(c fiber.Ctx) error {
	l, spec, ok, err := s.layer(c)
	if !ok {
		return err
	}

	o := render.Options{DPI: s.cfg.DPI}
	if q := c.Query("dpi"); q != "" {
		dpi, err := strconv.ParseFloat(q, 64)
		if err != nil || !(dpi > 0 && dpi <= MaxDPI) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("dpi must be a number in (0, %g]", MaxDPI),
			})
		}
		o.DPI = dpi
	}
	if s.cfg.Sheet || c.Query("sheet") == "1" {
		o.Kernel = sdfx.New()
	}

	img, err := render.Render(l, spec, o)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

func (s *Server) getSpec(c fiber.Ctx) error {
	spec := s.current()
	return c.JSON(fiber.Map{"design": spec.DesignID().String(), "spec": spec})
}

// putSpec evaluates the request body as a config script. Script errors
// leave the current spec in place. Each request gets its own engine so
// concurrent posts never supersede one another.
func (s *Server) putSpec(c fiber.Ctx) error {
	res, err := engine.NewEngine().Run(string(c.Body()))
	if err != nil {
		log.Printf("evaluate: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(res.Errors) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors":   res.Errors,
			"warnings": res.Warnings,
		})
	}

	s.mu.Lock()
	s.spec = *res.Spec
	s.mu.Unlock()

	log.Printf("spec replaced, design %s", res.Spec.DesignID())
	return c.JSON(fiber.Map{
		"design":   res.Spec.DesignID().String(),
		"warnings": res.Warnings,
	})
}
