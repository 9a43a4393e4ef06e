package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kpauljoseph/pdfrescaler/internal/app"
	"github.com/kpauljoseph/pdfrescaler/internal/pdf"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	mode := flag.String("mode", "zoom", "placement to show: zoom or fabuchi")
	zoom := flag.String("zoom", "107", "zoom percentage")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	rescaleMode, err := models.ParseMode(*mode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	opts := pdf.RescaleOptions{Mode: rescaleMode}
	if rescaleMode == models.ModeZoom {
		if opts.ScaleFactor, err = app.ParseZoomPercent(*zoom); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	place := opts.Placer()

	fmt.Printf("Analyzing PDF: %s\n", *pdfPath)

	doc, err := pdf.NewLibrary(nil).Open(*pdfPath)
	if err != nil {
		fmt.Printf("Error opening PDF: %v\n", err)
		os.Exit(1)
	}
	defer doc.Close()

	for pageNr := 1; pageNr <= doc.PageCount(); pageNr++ {
		dims, err := doc.PageDims(pageNr)
		if err != nil {
			fmt.Printf("Error getting page dimensions: %v\n", err)
			continue
		}

		rect := place(pageNr, dims)
		fmt.Printf("\nPage %d:\n", pageNr)
		fmt.Printf("Dimensions (Width x Height): %.3f x %.3f points\n", dims.Width, dims.Height)
		fmt.Printf("%s rectangle: %s (%.3f x %.3f)\n", rescaleMode, rect, rect.Width(), rect.Height())
		fmt.Printf("Content matrix: %s\n", pdf.PlacementMatrix(0, 0, dims, dims, rect))
	}
}
