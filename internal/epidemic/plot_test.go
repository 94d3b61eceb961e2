package epidemic_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/episim/internal/epidemic"
)

var _ = Describe("Plot", func() {
	It("renders all three compartment curves", func() {
		tr, err := epidemic.Integrate(context.Background(),
			epidemic.Compartments{S: 0.99, I: 0.01}, 20, 1.2, 1.0)
		Expect(err).NotTo(HaveOccurred())

		var buf strings.Builder
		Expect(epidemic.Plot(&buf, tr)).To(Succeed())

		out := buf.String()
		Expect(out).NotTo(BeEmpty())
		for _, legend := range []string{"S", "I", "R"} {
			Expect(out).To(ContainSubstring(legend))
		}
	})
})
