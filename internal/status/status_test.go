package status_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/pdfrescaler/internal/status"
	"github.com/kpauljoseph/pdfrescaler/pkg/logger"
)

var _ = Describe("Status", func() {
	It("should deliver messages through the channel in order", func() {
		ch := status.NewChannel(4)
		go func() {
			ch.Report(status.Success("Processed: a_zoomed.pdf"))
			ch.Report(status.Error("Error processing b.pdf: boom"))
			ch.Close()
		}()

		var got []status.Message
		for msg := range ch.Messages() {
			got = append(got, msg)
		}

		Expect(got).To(Equal([]status.Message{
			{Text: "Processed: a_zoomed.pdf", Severity: status.SeveritySuccess},
			{Text: "Error processing b.pdf: boom", Severity: status.SeverityError},
		}))
	})

	It("should fan out with Tee", func() {
		first, second := &status.Recorder{}, &status.Recorder{}
		r := status.Tee(first, second)
		r.Report(status.Info("hello"))

		Expect(first.Messages()).To(HaveLen(1))
		Expect(second.Messages()).To(HaveLen(1))
		Expect(first.Count(status.SeverityInfo)).To(Equal(1))
	})

	It("should write errors at error level", func() {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFlags(0))
		r := status.NewLogReporter(log)

		r.Report(status.Error("Invalid range 5-3."))
		r.Report(status.Success("PDF split successfully!"))

		Expect(buf.String()).To(ContainSubstring("ERROR: Invalid range 5-3."))
		Expect(buf.String()).To(ContainSubstring("INFO: [success] PDF split successfully!"))
	})

	DescribeTable("severity names",
		func(s status.Severity, name string) {
			Expect(s.String()).To(Equal(name))
		},
		Entry("info", status.SeverityInfo, "info"),
		Entry("success", status.SeveritySuccess, "success"),
		Entry("error", status.SeverityError, "error"),
	)
})
