package preview_test

import (
	"image/png"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfrescaler/internal/preview"
	"github.com/kpauljoseph/pdfrescaler/internal/testutil"
	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

var _ = Describe("Renderer", func() {
	var (
		tempDir  string
		pdfPath  string
		renderer *preview.Renderer
	)

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "pdfrescaler-preview-*")
		Expect(err).NotTo(HaveOccurred())

		pdfPath = filepath.Join(tempDir, "doc.pdf")
		Expect(testutil.WritePDF(pdfPath, []models.PageDimensions{
			{Width: 200, Height: 300},
			{Width: 400, Height: 100},
		})).To(Succeed())

		renderer = preview.NewRenderer(72, logger.New(logger.WithOutput(GinkgoWriter)))
	})

	AfterEach(func() {
		os.RemoveAll(tempDir)
	})

	It("should default a non-positive DPI", func() {
		Expect(preview.NewRenderer(0, nil).DPI()).To(Equal(preview.DefaultDPI))
	})

	It("should count pages", func() {
		count, err := renderer.PageCount(pdfPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(2))
	})

	It("should report page bounds in points", func() {
		bounds, err := renderer.Bounds(pdfPath, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(bounds.Dx()).To(BeNumerically("~", 400, 1))
		Expect(bounds.Dy()).To(BeNumerically("~", 100, 1))
	})

	It("should render a page at the page size for 72 dpi", func() {
		img, err := renderer.Image(pdfPath, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(BeNumerically("~", 200, 1))
		Expect(img.Bounds().Dy()).To(BeNumerically("~", 300, 1))
	})

	It("should write a decodable PNG", func() {
		outPath := filepath.Join(tempDir, "page.png")
		Expect(renderer.RenderPNG(pdfPath, 1, outPath)).To(Succeed())

		f, err := os.Open(outPath)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		img, err := png.Decode(f)
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Dx()).To(BeNumerically("~", 200, 1))
	})

	DescribeTable("rejecting pages outside the document",
		func(pageNr int) {
			_, err := renderer.Image(pdfPath, pageNr)
			Expect(err).To(MatchError(ContainSubstring("out of range")))
		},
		Entry("page zero", 0),
		Entry("past the end", 3),
	)

	It("should fail on a file that is not a PDF", func() {
		broken := filepath.Join(tempDir, "broken.pdf")
		Expect(testutil.WriteCorrupt(broken)).To(Succeed())

		_, err := renderer.Image(broken, 1)
		Expect(err).To(HaveOccurred())
	})
})
