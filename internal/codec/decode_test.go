package codec_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/luiz-simples/keyop.git/internal/codec"
	"github.com/luiz-simples/keyop.git/internal/domain"
)

var _ = Describe("Reply decoding", func() {
	Describe("Flag", func() {
		It("should map 1 to true and 0 to false", func() {
			set, err := codec.Flag("EXPIRE", domain.IntegerReply(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(set).To(BeTrue())

			set, err = codec.Flag("EXPIRE", domain.IntegerReply(0))
			Expect(err).NotTo(HaveOccurred())
			Expect(set).To(BeFalse())
		})

		DescribeTable("non-integer replies",
			func(reply domain.Reply) {
				_, err := codec.Flag("EXPIRE", reply)

				Expect(errors.Is(err, domain.ErrUnsupportedReply)).To(BeTrue())
			},
			Entry("null", domain.NullReply()),
			Entry("bulk", domain.BulkReply("1")),
			Entry("status", domain.StatusReply("OK")),
			Entry("array", domain.ArrayReply()),
		)

		It("should surface error replies as server errors", func() {
			_, err := codec.Flag("EXPIRE", domain.ErrorReply("ERR invalid expire time in 'expire' command"))

			var serverErr *domain.ServerError
			Expect(errors.As(err, &serverErr)).To(BeTrue())
			Expect(serverErr.Message).To(ContainSubstring("invalid expire time"))
		})
	})

	Describe("TTL", func() {
		It("should decode the three states", func() {
			result, err := codec.TTL("TTL", domain.IntegerReply(-2))
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Kind()).To(Equal(domain.KeyNotExists))

			result, _ = codec.TTL("TTL", domain.IntegerReply(-1))
			Expect(result.Kind()).To(Equal(domain.NoTTL))

			result, _ = codec.TTL("TTL", domain.IntegerReply(42))
			Expect(result.Kind()).To(Equal(domain.HasTTL))
			Expect(result.TTL()).To(Equal(int64(42)))
		})

		It("should name the reply tag and nullability", func() {
			_, err := codec.TTL("PTTL", domain.NullReply())

			Expect(err).To(MatchError("PTTL return type is BulkString, value == null is true"))
		})

		It("should not clamp out of range values", func() {
			_, err := codec.TTL("TTL", domain.IntegerReply(-7))

			Expect(errors.Is(err, domain.ErrOutOfRange)).To(BeTrue())
		})
	})

	Describe("ExpireTime", func() {
		It("should decode timestamps", func() {
			result, err := codec.ExpireTime("EXPIRETIME", domain.IntegerReply(1893456000))

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Kind()).To(Equal(domain.HasTimestamp))
			Expect(result.Timestamp()).To(Equal(int64(1893456000)))
		})

		It("should reject simple strings", func() {
			_, err := codec.ExpireTime("EXPIRETIME", domain.StatusReply("-1"))

			Expect(errors.Is(err, domain.ErrUnsupportedReply)).To(BeTrue())
		})
	})

	Describe("Set", func() {
		Context("without GET", func() {
			plain := domain.SetOptions{}

			DescribeTable("OK in any case is a success",
				func(text string) {
					result, err := codec.Set(domain.StatusReply(text), plain)

					Expect(err).NotTo(HaveOccurred())
					Expect(result.Succeeded).To(BeTrue())
					Expect(result.Data).To(BeEmpty())
				},
				Entry("upper", "OK"),
				Entry("lower", "ok"),
				Entry("mixed", "Ok"),
			)

			It("should treat a null reply as an unmet condition", func() {
				result, err := codec.Set(domain.NullReply(), domain.SetOptions{Behavior: domain.WriteNotExists})

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Succeeded).To(BeFalse())
				Expect(result.Data).To(BeEmpty())
			})

			DescribeTable("anything else is unsupported",
				func(reply domain.Reply) {
					_, err := codec.Set(reply, plain)

					Expect(errors.Is(err, domain.ErrUnsupportedReply)).To(BeTrue())
				},
				Entry("bulk OK", domain.BulkReply("OK")),
				Entry("other status", domain.StatusReply("QUEUED")),
				Entry("integer", domain.IntegerReply(1)),
			)
		})

		Context("with GET", func() {
			It("should return the old value", func() {
				result, err := codec.Set(domain.BulkReply("old"), domain.SetOptions{ReturnOld: true})

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Succeeded).To(BeTrue())
				Expect(result.Data).To(Equal("old"))
			})

			It("should succeed with an empty payload when there was no old value", func() {
				result, err := codec.Set(domain.NullReply(), domain.SetOptions{ReturnOld: true})

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Succeeded).To(BeTrue())
				Expect(result.Data).To(BeEmpty())
			})

			It("should fail when XX was not met", func() {
				result, err := codec.Set(domain.NullReply(), domain.SetOptions{ReturnOld: true, Behavior: domain.WriteExists})

				Expect(err).NotTo(HaveOccurred())
				Expect(result.Succeeded).To(BeFalse())
			})

			It("should reject a status reply", func() {
				_, err := codec.Set(domain.StatusReply("OK"), domain.SetOptions{ReturnOld: true})

				Expect(errors.Is(err, domain.ErrUnsupportedReply)).To(BeTrue())
			})
		})
	})

	Describe("OptionalString", func() {
		It("should decode null as empty", func() {
			value, err := codec.OptionalString("GETEX", domain.NullReply())

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(BeEmpty())
		})

		It("should reject integers", func() {
			_, err := codec.OptionalString("GETEX", domain.IntegerReply(3))

			Expect(errors.Is(err, domain.ErrUnsupportedReply)).To(BeTrue())
		})
	})

	Describe("OptionalStrings", func() {
		It("should decode arrays with missing members", func() {
			values, err := codec.OptionalStrings("MGET", domain.ArrayReply(domain.BulkReply("a"), domain.NullReply()), 2)

			Expect(err).NotTo(HaveOccurred())
			Expect(values).To(Equal([]string{"a", ""}))
		})

		It("should reject arrays of the wrong length", func() {
			_, err := codec.OptionalStrings("MGET", domain.ArrayReply(domain.BulkReply("a")), 2)

			Expect(errors.Is(err, domain.ErrUnsupportedReply)).To(BeTrue())
		})
	})

	Describe("DataType", func() {
		It("should map native tags", func() {
			dataType, err := codec.DataType(domain.StatusReply("zset"))

			Expect(err).NotTo(HaveOccurred())
			Expect(dataType).To(Equal(domain.TypeZSet))
		})

		It("should fail hard on unknown tags", func() {
			_, err := codec.DataType(domain.StatusReply("ReJSON-RL"))

			Expect(errors.Is(err, domain.ErrUnknownDataType)).To(BeTrue())
		})
	})

	Describe("Status", func() {
		It("should accept OK", func() {
			Expect(codec.Status("RENAME", domain.StatusReply("OK"))).To(Succeed())
		})

		It("should surface no such key", func() {
			err := codec.Status("RENAME", domain.ErrorReply("ERR no such key"))

			var serverErr *domain.ServerError
			Expect(errors.As(err, &serverErr)).To(BeTrue())
		})
	})

	Describe("Float", func() {
		It("should parse bulk floats", func() {
			value, err := codec.Float("INCRBYFLOAT", domain.BulkReply("10.5"))

			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal(10.5))
		})
	})
})
