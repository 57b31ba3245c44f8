package domain_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luiz-simples/keyop.git/internal/domain"
)

var _ = Describe("Behaviors", func() {
	Describe("ExpireBehavior", func() {
		DescribeTable("tokens",
			func(behavior domain.ExpireBehavior, token string, present bool) {
				actual, ok := behavior.Token()

				Expect(ok).To(Equal(present))
				Expect(actual).To(Equal(token))
			},
			Entry("none is omitted", domain.ExpireNone, "", false),
			Entry("exists", domain.ExpireExists, "XX", true),
			Entry("not exists", domain.ExpireNotExists, "NX", true),
			Entry("greater than", domain.ExpireGreaterThan, "GT", true),
			Entry("less than", domain.ExpireLessThan, "LT", true),
		)

		It("should reject unknown tokens", func() {
			_, err := domain.ParseExpireBehavior("GE")

			Expect(errors.Is(err, domain.ErrSyntax)).To(BeTrue())
		})
	})

	Describe("WriteBehavior", func() {
		DescribeTable("tokens",
			func(behavior domain.WriteBehavior, token string, present bool) {
				actual, ok := behavior.Token()

				Expect(ok).To(Equal(present))
				Expect(actual).To(Equal(token))
			},
			Entry("none is omitted", domain.WriteNone, "", false),
			Entry("exists", domain.WriteExists, "XX", true),
			Entry("not exists", domain.WriteNotExists, "NX", true),
		)

		It("should not accept expire-only tokens", func() {
			_, err := domain.ParseWriteBehavior("GT")

			Expect(errors.Is(err, domain.ErrSyntax)).To(BeTrue())
		})
	})
})
