package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kpauljoseph/pdfrescaler/internal/preview"
	"github.com/kpauljoseph/pdfrescaler/pkg/utils"
)

// debug_pdf renders a source PDF and its rescaled output side by side and
// compares page hashes.
func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: debug_pdf source.pdf rescaled.pdf")
		os.Exit(1)
	}

	pdf1Path := os.Args[1]
	pdf2Path := os.Args[2]

	// Rendered pages are kept for manual inspection.
	tempDir, err := os.MkdirTemp("", "pdf-debug-*")
	if err != nil {
		fmt.Printf("Error creating temp dir: %v\n", err)
		os.Exit(1)
	}

	renderer := preview.NewRenderer(preview.DefaultDPI, nil)

	pages1, err := renderer.PageCount(pdf1Path)
	if err != nil {
		fmt.Printf("Error opening first PDF: %v\n", err)
		os.Exit(1)
	}
	pages2, err := renderer.PageCount(pdf2Path)
	if err != nil {
		fmt.Printf("Error opening second PDF: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nBasic Properties:\n")
	fmt.Printf("PDF 1 pages: %d\n", pages1)
	fmt.Printf("PDF 2 pages: %d\n", pages2)

	maxPages := min(pages1, pages2)

	for pageNr := 1; pageNr <= maxPages; pageNr++ {
		fmt.Printf("\nAnalyzing Page %d:\n", pageNr)

		bounds1, _ := renderer.Bounds(pdf1Path, pageNr)
		bounds2, _ := renderer.Bounds(pdf2Path, pageNr)
		fmt.Printf("PDF 1 dimensions: %d x %d\n", bounds1.Dx(), bounds1.Dy())
		fmt.Printf("PDF 2 dimensions: %d x %d\n", bounds2.Dx(), bounds2.Dy())

		img1, err := renderer.Image(pdf1Path, pageNr)
		if err != nil {
			fmt.Printf("Error rendering PDF 1: %v\n", err)
			continue
		}
		img2, err := renderer.Image(pdf2Path, pageNr)
		if err != nil {
			fmt.Printf("Error rendering PDF 2: %v\n", err)
			continue
		}

		img1Path := filepath.Join(tempDir, fmt.Sprintf("page%d_pdf1.png", pageNr))
		img2Path := filepath.Join(tempDir, fmt.Sprintf("page%d_pdf2.png", pageNr))
		if err := renderer.RenderPNG(pdf1Path, pageNr, img1Path); err != nil {
			fmt.Printf("Error saving PDF 1 page: %v\n", err)
		}
		if err := renderer.RenderPNG(pdf2Path, pageNr, img2Path); err != nil {
			fmt.Printf("Error saving PDF 2 page: %v\n", err)
		}

		hash1, _ := utils.GenerateImageHash(img1)
		hash2, _ := utils.GenerateImageHash(img2)

		fmt.Printf("\nImage comparison:\n")
		fmt.Printf("PDF 1 hash: %s\n", hash1)
		fmt.Printf("PDF 2 hash: %s\n", hash2)
		fmt.Printf("Hashes match: %v\n", hash1 == hash2)

		fmt.Printf("\nSaved page images to:\n")
		fmt.Printf("PDF 1: %s\n", img1Path)
		fmt.Printf("PDF 2: %s\n", img2Path)
	}
}
