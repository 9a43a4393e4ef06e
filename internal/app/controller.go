package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/kpauljoseph/pdfrescaler/internal/pdf"
	"github.com/kpauljoseph/pdfrescaler/internal/status"
	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

// ErrBusy is returned when a rescale is requested while one is running.
var ErrBusy = errors.New("a rescale is already running")

// Controller turns front-end actions into engine calls. It validates input
// synchronously and hands rescaling to the worker.
type Controller struct {
	state    *State
	worker   *Worker
	rescaler *pdf.Rescaler
	splitter *pdf.RangeSplitter
	reporter status.Reporter
	logger   *logger.Logger

	mu      sync.Mutex
	results []models.RescaleResult
}

type ControllerConfig struct {
	State     *State
	Worker    *Worker
	Library   pdf.Library
	OutputDir string
	Reporter  status.Reporter
	Logger    *logger.Logger
}

func NewController(cfg ControllerConfig) *Controller {
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	state := cfg.State
	if state == nil {
		state = NewState()
	}
	worker := cfg.Worker
	if worker == nil {
		worker = NewWorker(nil)
	}
	return &Controller{
		state:    state,
		worker:   worker,
		rescaler: pdf.NewRescaler(cfg.Library, cfg.OutputDir, cfg.Reporter, log),
		splitter: pdf.NewRangeSplitter(cfg.Library, cfg.Reporter, log),
		reporter: cfg.Reporter,
		logger:   log,
	}
}

func (c *Controller) State() *State {
	return c.state
}

func (c *Controller) OutputDir() string {
	return c.rescaler.OutputDir()
}

// ParseZoomPercent converts a percentage such as "107" into a scale factor.
func ParseZoomPercent(text string) (float64, error) {
	percent, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(percent) || math.IsInf(percent, 0) || percent <= 0 {
		return 0, pdf.ErrInvalidZoom
	}
	return percent / 100, nil
}

// Rescale validates the request and starts it on the worker. Input errors
// are reported and returned before anything is opened. The zoom text is
// ignored in Fabuchi mode.
func (c *Controller) Rescale(ctx context.Context, mode models.Mode, zoomText string) error {
	opts := pdf.RescaleOptions{Mode: mode}
	if mode == models.ModeZoom {
		factor, err := ParseZoomPercent(zoomText)
		if err != nil {
			return c.fail(err)
		}
		opts.ScaleFactor = factor
	}

	paths := c.state.Selection()
	if len(paths) == 0 {
		return c.fail(pdf.ErrNoSelection)
	}

	started := c.worker.TryRun(func() error {
		results, err := c.rescaler.Run(ctx, paths, opts)
		c.mu.Lock()
		c.results = results
		c.mu.Unlock()
		return err
	})
	if !started {
		c.logger.Debug("Rescale request dropped, worker busy")
		return ErrBusy
	}

	c.logger.Debug("Started %s rescale of %d PDFs", mode, len(paths))
	return nil
}

// RescaleAndWait is Rescale followed by waiting for the worker.
func (c *Controller) RescaleAndWait(ctx context.Context, mode models.Mode, zoomText string) error {
	if err := c.Rescale(ctx, mode, zoomText); err != nil {
		return err
	}
	return c.worker.Wait()
}

// LastResults returns the per-document outcome of the most recent rescale.
func (c *Controller) LastResults() []models.RescaleResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.RescaleResult, len(c.results))
	copy(out, c.results)
	return out
}

// Wait blocks until the current rescale, if any, finishes.
func (c *Controller) Wait() error {
	return c.worker.Wait()
}

// Split runs synchronously on the caller's goroutine.
func (c *Controller) Split(rangeText string) ([]string, error) {
	return c.splitter.Split(c.state.Selection(), rangeText)
}

// SplitPageCount returns the page count of the single selected PDF, for the
// range prompt.
func (c *Controller) SplitPageCount() (int, error) {
	paths := c.state.Selection()
	switch {
	case len(paths) == 0:
		return 0, c.fail(pdf.ErrNoSelection)
	case len(paths) > 1:
		return 0, c.fail(pdf.ErrMultipleSelection)
	}

	count, err := c.splitter.PageCount(paths[0])
	if err != nil {
		return 0, c.fail(fmt.Errorf("failed to open %s: %w", paths[0], err))
	}
	return count, nil
}

func (c *Controller) fail(err error) error {
	c.reporter.Report(status.Error("Error: " + err.Error()))
	return err
}
