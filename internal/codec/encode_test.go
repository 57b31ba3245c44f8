package codec_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

var _ = Describe("Parameter encoding", func() {
	Describe("ValidateKey", func() {
		DescribeTable("blank keys",
			func(key string) {
				Expect(errors.Is(codec.ValidateKey(key), domain.ErrInvalidKey)).To(BeTrue())
			},
			Entry("empty", ""),
			Entry("space", " "),
			Entry("tabs and newlines", "\t\n"),
		)

		It("should accept keys with surrounding spaces", func() {
			Expect(codec.ValidateKey(" user:1 ")).To(Succeed())
		})
	})

	Describe("ValidateKeys", func() {
		It("should reject an empty collection", func() {
			Expect(errors.Is(codec.ValidateKeys(nil), domain.ErrInvalidKey)).To(BeTrue())
			Expect(errors.Is(codec.ValidateKeys([]string{}), domain.ErrInvalidKey)).To(BeTrue())
		})

		It("should reject one blank member among valid ones", func() {
			err := codec.ValidateKeys([]string{"a", "b", " ", "d"})

			Expect(errors.Is(err, domain.ErrInvalidKey)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("position 2"))
		})

		It("should accept valid collections", func() {
			Expect(codec.ValidateKeys([]string{"a", "b"})).To(Succeed())
		})
	})

	Describe("KeyList", func() {
		It("should not alias the caller slice", func() {
			keys := []string{"a", "b"}
			list, err := codec.KeyList(keys...)

			Expect(err).NotTo(HaveOccurred())
			list[0] = "z"
			Expect(keys[0]).To(Equal("a"))
		})
	})

	Describe("ExpireArgs", func() {
		It("should omit the token for the default behavior", func() {
			Expect(codec.ExpireArgs(10, domain.ExpireNone)).To(Equal([]string{"10"}))
		})

		DescribeTable("conditional behaviors",
			func(behavior domain.ExpireBehavior, token string) {
				Expect(codec.ExpireArgs(10, behavior)).To(Equal([]string{"10", token}))
			},
			Entry("GT", domain.ExpireGreaterThan, "GT"),
			Entry("LT", domain.ExpireLessThan, "LT"),
			Entry("NX", domain.ExpireNotExists, "NX"),
			Entry("XX", domain.ExpireExists, "XX"),
		)
	})

	Describe("SplitDuration", func() {
		It("should route a duration with milliseconds to the millisecond path", func() {
			value, milliseconds := codec.SplitDuration(10900 * time.Millisecond)

			Expect(milliseconds).To(BeTrue())
			Expect(value).To(Equal(int64(10900)))
		})

		It("should route whole seconds to the second path", func() {
			value, milliseconds := codec.SplitDuration(10000 * time.Millisecond)

			Expect(milliseconds).To(BeFalse())
			Expect(value).To(Equal(int64(10)))
		})

		It("should ignore sub-millisecond remainders", func() {
			value, milliseconds := codec.SplitDuration(3*time.Second + 500*time.Microsecond)

			Expect(milliseconds).To(BeFalse())
			Expect(value).To(Equal(int64(3)))
		})
	})

	Describe("SplitTime", func() {
		It("should use milliseconds when the time carries them", func() {
			moment := time.Date(2030, 1, 1, 0, 0, 0, 250*int(time.Millisecond), time.UTC)
			value, milliseconds := codec.SplitTime(moment)

			Expect(milliseconds).To(BeTrue())
			Expect(value).To(Equal(moment.UnixMilli()))
		})

		It("should use seconds for whole-second times", func() {
			moment := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
			value, milliseconds := codec.SplitTime(moment)

			Expect(milliseconds).To(BeFalse())
			Expect(value).To(Equal(moment.Unix()))
		})
	})

	Describe("SetArgs", func() {
		It("should reject GET together with NX before building anything", func() {
			args, err := codec.SetArgs("v", domain.SetOptions{ReturnOld: true, Behavior: domain.WriteNotExists})

			Expect(errors.Is(err, domain.ErrSyntax)).To(BeTrue())
			Expect(args).To(BeNil())
		})

		It("should send only the value by default", func() {
			args, err := codec.SetArgs("v", domain.SetOptions{})

			Expect(err).NotTo(HaveOccurred())
			Expect(args).To(Equal([]string{"v"}))
		})

		It("should send the expiry in milliseconds", func() {
			args, _ := codec.SetArgs("v", domain.SetOptions{Expiry: 10900 * time.Millisecond})

			Expect(args).To(Equal([]string{"v", "PX", "10900"}))
		})

		It("should prefer KEEPTTL over an expiry", func() {
			args, _ := codec.SetArgs("v", domain.SetOptions{Expiry: time.Second, KeepTTL: true})

			Expect(args).To(Equal([]string{"v", "KEEPTTL"}))
		})

		It("should append the write behavior and GET", func() {
			args, _ := codec.SetArgs("v", domain.SetOptions{
				Expiry:    2 * time.Second,
				Behavior:  domain.WriteExists,
				ReturnOld: true,
			})

			Expect(args).To(Equal([]string{"v", "PX", "2000", "XX", "GET"}))
		})
	})

	Describe("GetExArgs", func() {
		It("should persist when no expiry is given", func() {
			Expect(codec.GetExArgs(0)).To(Equal([]string{"PERSIST"}))
		})

		It("should set the expiry in milliseconds", func() {
			Expect(codec.GetExArgs(1500 * time.Millisecond)).To(Equal([]string{"PX", "1500"}))
		})
	})

	Describe("UnlinkArgs", func() {
		It("should carry the key count", func() {
			Expect(codec.UnlinkArgs([]string{"a", "b", "c"})).To(Equal([]string{"3"}))
		})
	})
})
