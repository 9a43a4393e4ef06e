package pdf_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/pdfrescaler/internal/pdf"
	"github.com/kpauljoseph/pdfrescaler/internal/testutil"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

var _ = Describe("PDFCPU document", func() {
	var (
		tempDir string
		library *pdf.PDFCPULibrary
		srcPath string
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "pdfrescaler-doc-*")
		Expect(err).NotTo(HaveOccurred())

		library = pdf.NewLibrary(pdfTestLogger())
		srcPath = filepath.Join(tempDir, "source.pdf")
		Expect(testutil.WritePDF(srcPath, testutil.NumberedSizes(4, models.PageDimensions{Width: 300, Height: 400}))).To(Succeed())
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should report page count and dimensions", func() {
		doc, err := library.Open(srcPath)
		Expect(err).NotTo(HaveOccurred())
		defer doc.Close()

		Expect(doc.PageCount()).To(Equal(4))
		dims, err := doc.PageDims(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(dims.Width).To(BeNumerically("~", 302, 0.01))
		Expect(dims.Height).To(BeNumerically("~", 400, 0.01))

		_, err = doc.PageDims(5)
		Expect(err).To(HaveOccurred())
	})

	It("should fail to open something that is not a PDF", func() {
		badPath := filepath.Join(tempDir, "broken.pdf")
		Expect(testutil.WriteCorrupt(badPath)).To(Succeed())

		_, err := library.Open(badPath)
		Expect(err).To(HaveOccurred())
	})

	It("should fail to open a missing file", func() {
		_, err := library.Open(filepath.Join(tempDir, "missing.pdf"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to read PDF"))
	})

	It("should extract a range verbatim and in order", func() {
		doc, err := library.Open(srcPath)
		Expect(err).NotTo(HaveOccurred())
		defer doc.Close()

		outPath := filepath.Join(tempDir, "range.pdf")
		Expect(doc.ExtractRange(models.PageRange{Start: 2, End: 3}, outPath)).To(Succeed())

		dims, err := api.PageDimsFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(dims).To(HaveLen(2))
		Expect(dims[0].Width).To(BeNumerically("~", 302, 0.01))
		Expect(dims[1].Width).To(BeNumerically("~", 303, 0.01))
	})

	It("should refuse an out of range extraction", func() {
		doc, err := library.Open(srcPath)
		Expect(err).NotTo(HaveOccurred())
		defer doc.Close()

		outPath := filepath.Join(tempDir, "range.pdf")
		err = doc.ExtractRange(models.PageRange{Start: 3, End: 9}, outPath)
		Expect(err).To(HaveOccurred())
		Expect(outPath).NotTo(BeAnExistingFile())
	})

	DescribeTable("projecting keeps every page size",
		func(opts pdf.RescaleOptions) {
			doc, err := library.Open(srcPath)
			Expect(err).NotTo(HaveOccurred())
			defer doc.Close()

			outPath := filepath.Join(tempDir, "projected.pdf")
			Expect(doc.Project(outPath, opts.Placer())).To(Succeed())
			Expect(outPath).To(BeAnExistingFile())

			dims, err := api.PageDimsFile(outPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(dims).To(HaveLen(4))
			for i, d := range dims {
				Expect(d.Width).To(BeNumerically("~", 300+float64(i+1), 0.01))
				Expect(d.Height).To(BeNumerically("~", 400, 0.01))
			}
		},
		Entry("zoom 100%", pdf.RescaleOptions{Mode: models.ModeZoom, ScaleFactor: 1}),
		Entry("zoom 107%", pdf.RescaleOptions{Mode: models.ModeZoom, ScaleFactor: 1.07}),
		Entry("zoom 50%", pdf.RescaleOptions{Mode: models.ModeZoom, ScaleFactor: 0.5}),
		Entry("fabuchi", pdf.RescaleOptions{Mode: models.ModeFabuchi}),
	)

	It("should project a document rewritten by pdfcpu", func() {
		optimized := filepath.Join(tempDir, "optimized.pdf")
		Expect(api.OptimizeFile(srcPath, optimized, nil)).To(Succeed())

		doc, err := library.Open(optimized)
		Expect(err).NotTo(HaveOccurred())
		defer doc.Close()

		outPath := filepath.Join(tempDir, "projected.pdf")
		opts := pdf.RescaleOptions{Mode: models.ModeZoom, ScaleFactor: 1}
		Expect(doc.Project(outPath, opts.Placer())).To(Succeed())

		count, err := api.PageCountFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(4))
		Expect(api.ValidateFile(outPath, nil)).To(Succeed())
	})

	It("should project every page of its own output again", func() {
		doc, err := library.Open(srcPath)
		Expect(err).NotTo(HaveOccurred())
		firstPass := filepath.Join(tempDir, "first.pdf")
		Expect(doc.Project(firstPass, pdf.RescaleOptions{Mode: models.ModeFabuchi}.Placer())).To(Succeed())
		Expect(doc.Close()).To(Succeed())

		doc, err = library.Open(firstPass)
		Expect(err).NotTo(HaveOccurred())
		defer doc.Close()
		secondPass := filepath.Join(tempDir, "second.pdf")
		Expect(doc.Project(secondPass, pdf.RescaleOptions{Mode: models.ModeFabuchi}.Placer())).To(Succeed())
		Expect(secondPass).To(BeAnExistingFile())
	})

	It("should measure and place pages by their crop box", func() {
		cropped := filepath.Join(tempDir, "cropped.pdf")
		Expect(testutil.WritePages(cropped, []testutil.Page{{
			Size:    models.PageDimensions{Width: 400, Height: 400},
			CropBox: types.NewRectangle(50, 50, 350, 350),
			Content: testutil.FillContent(0, 0, 400, 400),
		}})).To(Succeed())

		doc, err := library.Open(cropped)
		Expect(err).NotTo(HaveOccurred())
		defer doc.Close()

		dims, err := doc.PageDims(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(dims.Width).To(BeNumerically("~", 300, 0.01))

		outPath := filepath.Join(tempDir, "projected.pdf")
		Expect(doc.Project(outPath, pdf.RescaleOptions{Mode: models.ModeFabuchi}.Placer())).To(Succeed())

		outDims, err := api.PageDimsFile(outPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(outDims).To(HaveLen(1))
		Expect(outDims[0].Width).To(BeNumerically("~", 300, 0.01))
		Expect(outDims[0].Height).To(BeNumerically("~", 300, 0.01))
	})

	It("should leave the source untouched", func() {
		before, err := os.ReadFile(srcPath)
		Expect(err).NotTo(HaveOccurred())

		doc, err := library.Open(srcPath)
		Expect(err).NotTo(HaveOccurred())
		opts := pdf.RescaleOptions{Mode: models.ModeZoom, ScaleFactor: 2}
		Expect(doc.Project(filepath.Join(tempDir, "a.pdf"), opts.Placer())).To(Succeed())
		Expect(doc.ExtractRange(models.PageRange{Start: 1, End: 4}, filepath.Join(tempDir, "b.pdf"))).To(Succeed())
		Expect(doc.Close()).To(Succeed())

		after, err := os.ReadFile(srcPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(Equal(before))
	})

	It("should reject a degenerate placement", func() {
		doc, err := library.Open(srcPath)
		Expect(err).NotTo(HaveOccurred())
		defer doc.Close()

		outPath := filepath.Join(tempDir, "bad.pdf")
		err = doc.Project(outPath, func(int, models.PageDimensions) models.Rect { return models.Rect{} })
		Expect(err).To(HaveOccurred())
		Expect(outPath).NotTo(BeAnExistingFile())
	})

	It("should refuse to work after Close", func() {
		doc, err := library.Open(srcPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Close()).To(Succeed())

		Expect(doc.PageCount()).To(Equal(0))
		err = doc.ExtractRange(models.PageRange{Start: 1, End: 1}, filepath.Join(tempDir, "x.pdf"))
		Expect(err).To(HaveOccurred())
	})
})
