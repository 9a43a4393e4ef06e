package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/kpauljoseph/pdfrescaler/internal/app"
	"github.com/kpauljoseph/pdfrescaler/internal/config"
	"github.com/kpauljoseph/pdfrescaler/internal/pdf"
	"github.com/kpauljoseph/pdfrescaler/internal/preview"
	"github.com/kpauljoseph/pdfrescaler/internal/scanner"
	"github.com/kpauljoseph/pdfrescaler/internal/status"
	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
	"github.com/kpauljoseph/pdfrescaler/pkg/version"
)

const (
	modeSplit    = "split"
	statusBuffer = 32
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional)")
	mode := flag.String("mode", "zoom", "operation: zoom, fabuchi or split")
	zoom := flag.String("zoom", "", "zoom percentage (default from config, 107)")
	ranges := flag.String("ranges", "", "page ranges for split mode, e.g. \"1 3 5 10\"")
	pdfDir := flag.String("dir", "", "directory to scan for PDF files in addition to the arguments")
	workDir := flag.String("work-dir", "", "base directory for the output folder (overrides config)")
	renderPreview := flag.Bool("preview", false, "render the first page of every rescaled PDF to PNG")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] file.pdf...\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Print(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[pdfrescaler] "))
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	if *verbose {
		log.Debug("Verbose logging enabled")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	var rescaleMode models.Mode
	if *mode != modeSplit {
		if rescaleMode, err = models.ParseMode(*mode); err != nil {
			log.Fatal("%v", err)
		}
	}

	if *workDir != "" {
		cfg.WorkDir = *workDir
	}
	if *zoom == "" {
		*zoom = strconv.FormatFloat(cfg.DefaultZoomPercent, 'f', -1, 64)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received interrupt signal, stopping after the current PDF...")
		cancel()
	}()

	paths, err := collectPaths(ctx, log, flag.Args(), *pdfDir)
	if err != nil {
		log.Fatal("Error selecting PDFs: %v", err)
	}

	state := app.NewState()
	state.Select(paths)
	log.Debug("Selected %d PDFs", state.Len())

	statusCh := status.NewChannel(statusBuffer)
	recorder := &status.Recorder{}

	controller := app.NewController(app.ControllerConfig{
		State:     state,
		Library:   pdf.NewLibrary(log),
		OutputDir: cfg.OutputDir(),
		Reporter:  status.Tee(statusCh, recorder),
		Logger:    log,
	})

	var opErr error
	go func() {
		defer statusCh.Close()
		if *mode == modeSplit {
			opErr = runSplit(controller, *ranges, log)
			return
		}
		if opErr = controller.RescaleAndWait(ctx, rescaleMode, *zoom); opErr != nil {
			log.Debug("Rescale finished with error: %v", opErr)
		}
	}()

	printer := status.NewLogReporter(log)
	for msg := range statusCh.Messages() {
		printer.Report(msg)
	}

	if *renderPreview && *mode != modeSplit {
		writePreviews(controller.LastResults(), cfg.PreviewDPI, log)
	}

	if code := exitCode(opErr, recorder.Count(status.SeverityError)); code != exitOK {
		os.Exit(code)
	}
}

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// exitCode is 2 for rejected input, 1 when any document failed.
func exitCode(err error, reportedErrors int) int {
	switch {
	case pdf.IsUserError(err):
		return exitUsage
	case err != nil || reportedErrors > 0:
		return exitFailure
	default:
		return exitOK
	}
}

func collectPaths(ctx context.Context, log *logger.Logger, args []string, dir string) ([]string, error) {
	paths := append([]string(nil), args...)
	if dir != "" {
		log.Info("Scanning directory: %s", dir)
		found, err := scanner.New(log).FindPDFs(ctx, dir)
		if err != nil {
			return nil, err
		}
		log.Info("Found %d PDFs", len(found))
		paths = append(paths, found...)
	}
	return scanner.ResolvePaths(paths)
}

// runSplit hands the ranges straight to the splitter, which rejects bad
// input before the document is opened.
func runSplit(controller *app.Controller, ranges string, log *logger.Logger) error {
	outputs, err := controller.Split(ranges)
	if err != nil {
		return err
	}
	for _, out := range outputs {
		log.Debug("Wrote %s", out)
	}
	return nil
}

// writePreviews renders page 1 of every successfully rescaled PDF.
func writePreviews(results []models.RescaleResult, dpi float64, log *logger.Logger) {
	renderer := preview.NewRenderer(dpi, log)
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		pngPath := result.OutputPath + ".png"
		if err := renderer.RenderPNG(result.OutputPath, 1, pngPath); err != nil {
			log.Error("Preview of %s failed: %v", filepath.Base(result.OutputPath), err)
			continue
		}
		log.Info("Preview: %s", pngPath)
	}
}
