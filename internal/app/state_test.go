package app_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfrescaler/internal/app"
)

var _ = Describe("State", func() {
	var state *app.State

	BeforeEach(func() {
		state = app.NewState()
	})

	It("should start empty", func() {
		Expect(state.Selection()).To(BeEmpty())
		Expect(state.Len()).To(Equal(0))
	})

	It("should replace the selection on Select", func() {
		state.Select([]string{"/a.pdf", "/b.pdf"})
		state.Select([]string{"/c.pdf"})
		Expect(state.Selection()).To(Equal([]string{"/c.pdf"}))
	})

	It("should append without duplicates on Add", func() {
		state.Select([]string{"/a.pdf"})
		state.Add("/b.pdf", "/a.pdf", "/c.pdf")
		Expect(state.Selection()).To(Equal([]string{"/a.pdf", "/b.pdf", "/c.pdf"}))
	})

	It("should drop duplicates within a single Select", func() {
		state.Select([]string{"/a.pdf", "/a.pdf"})
		Expect(state.Len()).To(Equal(1))
	})

	It("should empty the selection on Clear", func() {
		state.Select([]string{"/a.pdf"})
		state.Clear()
		Expect(state.Selection()).To(BeEmpty())
	})

	It("should hand out copies", func() {
		state.Select([]string{"/a.pdf"})
		sel := state.Selection()
		sel[0] = "/changed.pdf"
		Expect(state.Selection()).To(Equal([]string{"/a.pdf"}))
	})
})
