package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfrescaler/pkg/models"
)

var _ = Describe("Document Models", func() {
	Context("Rect", func() {
		It("should report width and height", func() {
			r := models.Rect{Left: 10, Top: 20, Right: 110, Bottom: 220}
			Expect(r.Width()).To(Equal(100.0))
			Expect(r.Height()).To(Equal(200.0))
			Expect(r.IsValid()).To(BeTrue())
		})

		It("should reject degenerate rectangles", func() {
			Expect(models.Rect{Left: 10, Top: 0, Right: 10, Bottom: 5}.IsValid()).To(BeFalse())
			Expect(models.Rect{Left: 0, Top: 5, Right: 10, Bottom: 5}.IsValid()).To(BeFalse())
		})
	})

	Context("PageRange", func() {
		It("should list pages in order", func() {
			r := models.PageRange{Start: 5, End: 10}
			Expect(r.Len()).To(Equal(6))
			Expect(r.Pages()).To(Equal([]int{5, 6, 7, 8, 9, 10}))
			Expect(r.String()).To(Equal("5-10"))
		})

		It("should handle a single page range", func() {
			r := models.PageRange{Start: 3, End: 3}
			Expect(r.Pages()).To(Equal([]int{3}))
		})
	})

	Context("Mode", func() {
		DescribeTable("output suffix",
			func(mode models.Mode, suffix string) {
				Expect(mode.Suffix()).To(Equal(suffix))
			},
			Entry("zoom", models.ModeZoom, "_zoomed"),
			Entry("fabuchi", models.ModeFabuchi, "_fabuchi"),
		)

		It("should round trip through its name", func() {
			for _, m := range []models.Mode{models.ModeZoom, models.ModeFabuchi} {
				parsed, err := models.ParseMode(m.String())
				Expect(err).NotTo(HaveOccurred())
				Expect(parsed).To(Equal(m))
			}
		})

		It("should reject unknown names", func() {
			_, err := models.ParseMode("crop")
			Expect(err).To(HaveOccurred())
		})
	})
})
