package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

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
	modeZoomLabel    = "Zoom"
	modeFabuchiLabel = "Fabuchi"
	statusBuffer     = 64
)

type RescalerGUI struct {
	// Core components
	window      fyne.Window
	log         *logger.Logger
	logFileName string
	cfg         *config.Config
	controller  *app.Controller
	scanner     *scanner.DirectoryScanner
	renderer    *preview.Renderer
	statusCh    *status.Channel

	mode models.Mode

	// UI components
	fileList     *widget.List
	selectionLbl *widget.Label
	modeRadio    *widget.RadioGroup
	zoomEntry    *widget.Entry
	zoomRow      *fyne.Container
	processBtn   *widget.Button
	splitBtn     *widget.Button
	previewBtn   *widget.Button
	progress     *widget.ProgressBarInfinite
	statusLog    *widget.RichText
	statusScroll *container.Scroll
}

func NewRescalerGUI(cfg *config.Config) *RescalerGUI {
	log, logFileName, err := setupLogging(cfg.LogDir)
	if err != nil {
		log = logger.New(logger.WithPrefix("[pdfrescaler-gui] "))
		fmt.Printf("Warning: Failed to set up logging: %v\n", err)
	}

	rescalerApp := fyneapp.New()
	window := rescalerApp.NewWindow(version.AppName)

	gui := &RescalerGUI{
		window:      window,
		log:         log,
		logFileName: logFileName,
		cfg:         cfg,
		scanner:     scanner.New(log),
		renderer:    preview.NewRenderer(cfg.PreviewDPI, log),
		statusCh:    status.NewChannel(statusBuffer),
		mode:        models.ModeZoom,
	}

	gui.controller = app.NewController(app.ControllerConfig{
		Worker:    app.NewWorker(gui.setBusy),
		Library:   pdf.NewLibrary(log),
		OutputDir: cfg.OutputDir(),
		Reporter:  status.Tee(gui.statusCh, status.NewLogReporter(log)),
		Logger:    log,
	})

	return gui
}

func (gui *RescalerGUI) setupUI() {
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("Help",
			fyne.NewMenuItem("About", func() {
				dialog.ShowInformation(
					"About "+version.AppName,
					version.GetDetailedVersionInfo()+"\nLog file: "+gui.logFileName,
					gui.window,
				)
			}),
		),
	)
	gui.window.SetMainMenu(mainMenu)

	// Selection
	gui.selectionLbl = widget.NewLabel("No PDFs selected")
	gui.fileList = widget.NewList(
		func() int { return gui.controller.State().Len() },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			selection := gui.controller.State().Selection()
			if id < len(selection) {
				obj.(*widget.Label).SetText(filepath.Base(selection[id]))
			}
		},
	)

	addFileBtn := widget.NewButtonWithIcon("Add PDF", theme.FileIcon(), gui.handleAddFile)
	addFileBtn.Importance = widget.HighImportance
	addFolderBtn := widget.NewButtonWithIcon("Add Folder", theme.FolderOpenIcon(), gui.handleAddFolder)
	clearBtn := widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), gui.handleClear)

	selectionCard := widget.NewCard("", "", container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Selected PDFs", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			gui.selectionLbl,
		),
		container.NewHBox(addFileBtn, addFolderBtn, layout.NewSpacer(), clearBtn),
		nil, nil,
		container.NewGridWrap(fyne.NewSize(640, 160), gui.fileList),
	))

	// Rescale settings
	gui.zoomEntry = widget.NewEntry()
	gui.zoomEntry.SetText(strconv.FormatFloat(gui.cfg.DefaultZoomPercent, 'f', -1, 64))
	gui.zoomRow = container.NewBorder(nil, nil, widget.NewLabel("Zoom (%):"), nil, gui.zoomEntry)

	gui.modeRadio = widget.NewRadioGroup([]string{modeZoomLabel, modeFabuchiLabel}, gui.handleModeChange)
	gui.modeRadio.Horizontal = true
	gui.modeRadio.Required = true
	gui.modeRadio.SetSelected(modeZoomLabel)

	gui.processBtn = widget.NewButton("Process", gui.handleProcess)
	gui.processBtn.Importance = widget.HighImportance

	gui.previewBtn = widget.NewButtonWithIcon("Preview", theme.VisibilityIcon(), gui.handlePreview)
	gui.previewBtn.Disable()

	gui.progress = widget.NewProgressBarInfinite()
	gui.progress.Stop()
	gui.progress.Hide()

	rescaleCard := widget.NewCard("", "", container.NewVBox(
		widget.NewLabelWithStyle("Rescale", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		gui.modeRadio,
		gui.zoomRow,
		widget.NewLabel("Output folder: "+gui.controller.OutputDir()),
		container.NewBorder(nil, nil, nil, gui.previewBtn, gui.processBtn),
		gui.progress,
	))

	// Split
	gui.splitBtn = widget.NewButtonWithIcon("Split PDF", theme.ContentCutIcon(), gui.handleSplit)
	splitCard := widget.NewCard("", "", container.NewVBox(
		widget.NewLabelWithStyle("Split", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Select exactly one PDF, then enter start/end page pairs."),
		gui.splitBtn,
	))

	// Status log
	gui.statusLog = widget.NewRichText()
	gui.statusLog.Wrapping = fyne.TextWrapWord
	gui.statusScroll = container.NewVScroll(gui.statusLog)
	gui.statusScroll.SetMinSize(fyne.NewSize(0, 160))

	verboseCheck := widget.NewCheck("Verbose Logging", func(checked bool) {
		gui.log.SetVerbose(checked)
	})

	content := container.NewBorder(
		container.NewVBox(selectionCard, rescaleCard, splitCard),
		verboseCheck,
		nil, nil,
		widget.NewCard("", "", gui.statusScroll),
	)

	gui.window.SetContent(container.NewPadded(content))
	gui.window.Resize(fyne.NewSize(700, 800))
	gui.window.SetFixedSize(false)

	gui.appendStatus(status.Info("Ready to process files..."))
}

// drainStatus moves status messages from the worker onto the interface loop.
func (gui *RescalerGUI) drainStatus() {
	for msg := range gui.statusCh.Messages() {
		fyne.Do(func() {
			gui.appendStatus(msg)
		})
	}
}

func (gui *RescalerGUI) appendStatus(msg status.Message) {
	style := widget.RichTextStyleParagraph
	switch msg.Severity {
	case status.SeverityError:
		style.ColorName = theme.ColorNameError
	case status.SeveritySuccess:
		style.ColorName = theme.ColorNameSuccess
	default:
		style.ColorName = theme.ColorNameForeground
	}

	gui.statusLog.Segments = append(gui.statusLog.Segments, &widget.TextSegment{
		Text:  time.Now().Format("15:04:05") + "  " + msg.Text,
		Style: style,
	})
	gui.statusLog.Refresh()
	gui.statusScroll.ScrollToBottom()
}

// setBusy is called from the worker goroutine.
func (gui *RescalerGUI) setBusy(busy bool) {
	fyne.Do(func() {
		if busy {
			gui.processBtn.Disable()
			gui.previewBtn.Disable()
			gui.progress.Show()
			gui.progress.Start()
			return
		}
		gui.progress.Stop()
		gui.progress.Hide()
		gui.processBtn.Enable()
		if gui.firstOutput() != "" {
			gui.previewBtn.Enable()
		}
	})
}

func (gui *RescalerGUI) refreshSelection() {
	n := gui.controller.State().Len()
	switch n {
	case 0:
		gui.selectionLbl.SetText("No PDFs selected")
	case 1:
		gui.selectionLbl.SetText("1 PDF selected")
	default:
		gui.selectionLbl.SetText(fmt.Sprintf("%d PDFs selected", n))
	}
	gui.fileList.Refresh()
}

func (gui *RescalerGUI) handleAddFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, gui.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		paths, err := scanner.ResolvePaths([]string{reader.URI().Path()})
		if err != nil {
			dialog.ShowError(err, gui.window)
			return
		}
		gui.controller.State().Add(paths...)
		gui.log.Debug("Selected %s", paths[0])
		gui.refreshSelection()
	}, gui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".PDF"}))
	fileDialog.Show()
}

func (gui *RescalerGUI) handleAddFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, gui.window)
			return
		}
		if uri == nil {
			return
		}

		pdfs, err := gui.scanner.FindPDFs(context.Background(), uri.Path())
		if err != nil {
			gui.appendStatus(status.Error("Error: " + err.Error()))
			return
		}
		gui.controller.State().Add(pdfs...)
		gui.appendStatus(status.Info(fmt.Sprintf("Added %d PDFs from %s", len(pdfs), uri.Path())))
		gui.refreshSelection()
	}, gui.window)
}

func (gui *RescalerGUI) handleClear() {
	gui.controller.State().Clear()
	gui.refreshSelection()
}

func (gui *RescalerGUI) handleModeChange(selected string) {
	switch selected {
	case modeFabuchiLabel:
		gui.mode = models.ModeFabuchi
		gui.zoomRow.Hide()
	default:
		gui.mode = models.ModeZoom
		gui.zoomRow.Show()
	}
}

func (gui *RescalerGUI) handleProcess() {
	err := gui.controller.Rescale(context.Background(), gui.mode, gui.zoomEntry.Text)
	if errors.Is(err, app.ErrBusy) {
		gui.appendStatus(status.Info("Still processing, please wait..."))
	}
}

func (gui *RescalerGUI) handleSplit() {
	total, err := gui.controller.SplitPageCount()
	if err != nil {
		return
	}

	rangeEntry := widget.NewEntry()
	rangeEntry.SetPlaceHolder("1 3 5 10")
	rangeItem := widget.NewFormItem("Page ranges", rangeEntry)
	rangeItem.HintText = fmt.Sprintf("Total pages: %d. Enter start/end pairs separated by spaces.", total)

	dialog.ShowForm("Split PDF", "Split", "Cancel", []*widget.FormItem{rangeItem}, func(ok bool) {
		if !ok {
			return
		}
		// Runs on the interface loop; messages arrive through drainStatus.
		if _, err := gui.controller.Split(rangeEntry.Text); err != nil {
			gui.log.Debug("Split failed: %v", err)
		}
	}, gui.window)
}

func (gui *RescalerGUI) firstOutput() string {
	for _, result := range gui.controller.LastResults() {
		if result.Err == nil && result.OutputPath != "" {
			return result.OutputPath
		}
	}
	return ""
}

func (gui *RescalerGUI) handlePreview() {
	outPath := gui.firstOutput()
	if outPath == "" {
		return
	}

	img, err := gui.renderer.Image(outPath, 1)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to render preview: %w", err), gui.window)
		return
	}

	previewImg := canvas.NewImageFromImage(img)
	previewImg.FillMode = canvas.ImageFillContain
	previewImg.SetMinSize(fyne.NewSize(400, 500))

	d := dialog.NewCustom(filepath.Base(outPath)+" - page 1", "Close", previewImg, gui.window)
	d.Resize(fyne.NewSize(500, 600))
	d.Show()
}

func setupLogging(logsDir string) (*logger.Logger, string, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(logsDir, fmt.Sprintf("pdfrescaler_%s.log", timestamp))

	absLogPath, err := filepath.Abs(logFileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	logFile, err := os.Create(absLogPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, logFile)
	log := logger.New(
		logger.WithPrefix("[pdfrescaler-gui] "),
		logger.WithOutput(multiWriter),
	)

	return log, absLogPath, nil
}

func (gui *RescalerGUI) Run() {
	gui.setupUI()
	go gui.drainStatus()
	gui.window.ShowAndRun()

	if err := gui.controller.Wait(); err != nil {
		gui.log.Debug("Last rescale ended with: %v", err)
	}
	gui.statusCh.Close()
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Warning: %v, using defaults\n", err)
		cfg = config.Default()
	}

	gui := NewRescalerGUI(cfg)
	gui.Run()
}
