package server_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/luiz-simples/keyop.git/internal/server"
)

var _ = Describe("Command Handlers", Ordered, func() {
	var (
		srv    *server.Server
		client *redis.Client
		ctx    context.Context
	)

	BeforeAll(func() {
		srv, client = startServer(server.Config{Address: "localhost:6401"})
	})

	BeforeEach(func() {
		ctx = context.Background()
		Expect(client.FlushAll(ctx).Err()).To(Succeed())
	})

	It("should track connected clients", func() {
		before := srv.Sessions()
		Expect(before).To(BeNumerically(">=", 1))

		extra := redis.NewClient(&redis.Options{Addr: "localhost:6401"})
		Expect(extra.Ping(ctx).Err()).To(Succeed())
		Expect(srv.Sessions()).To(Equal(before + 1))

		extra.Close()
		Eventually(srv.Sessions, "2s", "20ms").Should(Equal(before))
	})

	It("should count live keys", func() {
		Expect(client.MSet(ctx, "a", "1", "b", "2").Err()).To(Succeed())

		Expect(srv.Keyspace().Size(0)).To(Equal(2))
	})

	Describe("Generic key commands", func() {
		It("should count repeated keys in EXISTS and TOUCH", func() {
			Expect(client.Set(ctx, "a", "1", 0).Err()).To(Succeed())

			Expect(client.Exists(ctx, "a", "a", "missing").Val()).To(Equal(int64(2)))
			Expect(client.Touch(ctx, "a", "missing").Val()).To(Equal(int64(1)))
		})

		It("should delete with DEL and UNLINK", func() {
			Expect(client.MSet(ctx, "a", "1", "b", "2", "c", "3").Err()).To(Succeed())

			Expect(client.Del(ctx, "a", "missing").Val()).To(Equal(int64(1)))
			Expect(client.Unlink(ctx, "b", "c").Val()).To(Equal(int64(2)))
			Expect(client.Exists(ctx, "a", "b", "c").Val()).To(BeZero())
		})

		It("should report wrong arity", func() {
			err := client.Do(ctx, "DEL").Err()

			Expect(err).To(MatchError(ContainSubstring("wrong number of arguments for 'del' command")))
		})

		It("should reject unknown commands", func() {
			err := client.Do(ctx, "LPUSH", "list", "x").Err()

			Expect(err).To(MatchError(ContainSubstring("unknown command 'lpush'")))
		})

		It("should report TYPE", func() {
			Expect(client.Set(ctx, "a", "1", 0).Err()).To(Succeed())

			Expect(client.Type(ctx, "a").Val()).To(Equal("string"))
			Expect(client.Type(ctx, "missing").Val()).To(Equal("none"))
		})

		It("should RENAME and keep the TTL", func() {
			Expect(client.Set(ctx, "old", "value", time.Minute).Err()).To(Succeed())

			Expect(client.Rename(ctx, "old", "new").Err()).To(Succeed())
			Expect(client.Get(ctx, "new").Val()).To(Equal("value"))
			Expect(client.TTL(ctx, "new").Val()).To(BeNumerically(">", 50*time.Second))
			Expect(client.Exists(ctx, "old").Val()).To(BeZero())
		})

		It("should fail RENAME of a missing key", func() {
			err := client.Rename(ctx, "missing", "new").Err()

			Expect(err).To(MatchError("ERR no such key"))
		})

		It("should keep databases apart", func() {
			Expect(client.Set(ctx, "shared", "zero", 0).Err()).To(Succeed())

			other := redis.NewClient(&redis.Options{Addr: "localhost:6401", DB: 3})
			defer other.Close()

			Expect(other.Get(ctx, "shared").Err()).To(Equal(redis.Nil))
			Expect(other.Set(ctx, "shared", "three", 0).Err()).To(Succeed())
			Expect(client.Get(ctx, "shared").Val()).To(Equal("zero"))
		})

		It("should reject databases out of range", func() {
			err := client.Do(ctx, "SELECT", "16").Err()

			Expect(err).To(MatchError("ERR DB index is out of range"))
		})
	})

	Describe("TTL commands", func() {
		It("should report the three TTL states", func() {
			Expect(client.Set(ctx, "plain", "1", 0).Err()).To(Succeed())
			Expect(client.Set(ctx, "volatile", "1", 10*time.Second).Err()).To(Succeed())

			Expect(client.Do(ctx, "TTL", "missing").Val()).To(Equal(int64(-2)))
			Expect(client.Do(ctx, "TTL", "plain").Val()).To(Equal(int64(-1)))
			Expect(client.Do(ctx, "TTL", "volatile").Val()).To(Equal(int64(10)))
			Expect(client.Do(ctx, "PTTL", "volatile").Val()).To(BeNumerically("~", 10000, 200))
		})

		It("should apply EXPIRE behaviors", func() {
			Expect(client.Set(ctx, "key", "1", 0).Err()).To(Succeed())

			Expect(client.ExpireXX(ctx, "key", time.Minute).Val()).To(BeFalse())
			Expect(client.ExpireNX(ctx, "key", time.Minute).Val()).To(BeTrue())
			Expect(client.ExpireGT(ctx, "key", time.Hour).Val()).To(BeTrue())
			Expect(client.ExpireLT(ctx, "key", 2*time.Hour).Val()).To(BeFalse())
		})

		It("should expire keys after PEXPIRE", func() {
			Expect(client.Set(ctx, "short", "1", 0).Err()).To(Succeed())
			Expect(client.PExpire(ctx, "short", 50*time.Millisecond).Val()).To(BeTrue())

			Eventually(func() int64 {
				return client.Exists(ctx, "short").Val()
			}, "2s", "20ms").Should(BeZero())
		})

		It("should report EXPIRETIME and PEXPIRETIME", func() {
			deadline := time.Now().Add(time.Hour).Truncate(time.Second)
			Expect(client.Set(ctx, "key", "1", 0).Err()).To(Succeed())
			Expect(client.ExpireAt(ctx, "key", deadline).Val()).To(BeTrue())

			Expect(client.Do(ctx, "EXPIRETIME", "key").Val()).To(Equal(deadline.Unix()))
			Expect(client.Do(ctx, "PEXPIRETIME", "key").Val()).To(Equal(deadline.UnixMilli()))
			Expect(client.Do(ctx, "EXPIRETIME", "missing").Val()).To(Equal(int64(-2)))
		})

		It("should PERSIST volatile keys only", func() {
			Expect(client.Set(ctx, "volatile", "1", time.Minute).Err()).To(Succeed())
			Expect(client.Set(ctx, "plain", "1", 0).Err()).To(Succeed())

			Expect(client.Persist(ctx, "volatile").Val()).To(BeTrue())
			Expect(client.Persist(ctx, "plain").Val()).To(BeFalse())
			Expect(client.Persist(ctx, "missing").Val()).To(BeFalse())
		})
	})

	Describe("SET", func() {
		It("should honor NX and XX", func() {
			Expect(client.SetNX(ctx, "key", "first", 0).Val()).To(BeTrue())
			Expect(client.SetNX(ctx, "key", "second", 0).Val()).To(BeFalse())
			Expect(client.SetXX(ctx, "missing", "value", 0).Val()).To(BeFalse())
			Expect(client.Get(ctx, "key").Val()).To(Equal("first"))
		})

		It("should return the old value with GET", func() {
			Expect(client.Set(ctx, "key", "old", 0).Err()).To(Succeed())

			previous, err := client.SetArgs(ctx, "key", "new", redis.SetArgs{Get: true}).Result()

			Expect(err).NotTo(HaveOccurred())
			Expect(previous).To(Equal("old"))
			Expect(client.Get(ctx, "key").Val()).To(Equal("new"))
		})

		It("should keep the TTL with KEEPTTL", func() {
			Expect(client.Set(ctx, "key", "old", time.Minute).Err()).To(Succeed())
			Expect(client.SetArgs(ctx, "key", "new", redis.SetArgs{KeepTTL: true}).Err()).To(Succeed())

			Expect(client.TTL(ctx, "key").Val()).To(BeNumerically(">", 50*time.Second))
		})

		It("should clear the TTL on a plain overwrite", func() {
			Expect(client.Set(ctx, "key", "old", time.Minute).Err()).To(Succeed())
			Expect(client.Set(ctx, "key", "new", 0).Err()).To(Succeed())

			Expect(client.TTL(ctx, "key").Val()).To(Equal(time.Duration(-1)))
		})

		It("should reject conflicting options", func() {
			err := client.Do(ctx, "SET", "key", "value", "NX", "XX").Err()
			Expect(err).To(MatchError("ERR syntax error"))

			err = client.Do(ctx, "SET", "key", "value", "PX", "0").Err()
			Expect(err).To(MatchError("ERR invalid expire time in 'set' command"))

			err = client.Do(ctx, "SET", "key", "value", "KEEPTTL", "EX", "10").Err()
			Expect(err).To(MatchError("ERR syntax error"))
		})
	})

	Describe("String reads", func() {
		It("should GETDEL", func() {
			Expect(client.Set(ctx, "key", "value", 0).Err()).To(Succeed())

			Expect(client.GetDel(ctx, "key").Val()).To(Equal("value"))
			Expect(client.GetDel(ctx, "key").Err()).To(Equal(redis.Nil))
		})

		It("should GETEX with PERSIST and PX", func() {
			Expect(client.Set(ctx, "key", "value", time.Minute).Err()).To(Succeed())

			Expect(client.Do(ctx, "GETEX", "key", "PERSIST").Val()).To(Equal("value"))
			Expect(client.TTL(ctx, "key").Val()).To(Equal(time.Duration(-1)))

			Expect(client.Do(ctx, "GETEX", "key", "PX", "30000").Val()).To(Equal("value"))
			Expect(client.PTTL(ctx, "key").Val()).To(BeNumerically(">", 25*time.Second))
		})

		It("should clamp GETRANGE like the store", func() {
			Expect(client.Set(ctx, "key", "This is a string", 0).Err()).To(Succeed())

			Expect(client.GetRange(ctx, "key", 0, 3).Val()).To(Equal("This"))
			Expect(client.GetRange(ctx, "key", -3, -1).Val()).To(Equal("ing"))
			Expect(client.GetRange(ctx, "key", 0, -1).Val()).To(Equal("This is a string"))
			Expect(client.GetRange(ctx, "key", 10, 100).Val()).To(Equal("string"))
			Expect(client.GetRange(ctx, "key", 5, 2).Val()).To(BeEmpty())
			Expect(client.GetRange(ctx, "missing", 0, -1).Val()).To(BeEmpty())
		})

		It("should MGET with nulls for missing keys", func() {
			Expect(client.Set(ctx, "a", "1", 0).Err()).To(Succeed())

			Expect(client.MGet(ctx, "a", "missing").Val()).To(Equal([]any{"1", nil}))
		})
	})

	Describe("String writes", func() {
		It("should MSETNX only when no key exists", func() {
			Expect(client.MSetNX(ctx, "a", "1", "b", "2").Val()).To(BeTrue())
			Expect(client.MSetNX(ctx, "b", "x", "c", "3").Val()).To(BeFalse())
			Expect(client.Exists(ctx, "c").Val()).To(BeZero())
		})

		It("should SETRANGE with zero padding", func() {
			Expect(client.SetRange(ctx, "key", 3, "abc").Val()).To(Equal(int64(6)))
			Expect(client.Get(ctx, "key").Val()).To(Equal("\x00\x00\x00abc"))

			Expect(client.SetRange(ctx, "empty", 5, "").Val()).To(BeZero())
			Expect(client.Exists(ctx, "empty").Val()).To(BeZero())
		})

		It("should APPEND and STRLEN", func() {
			Expect(client.Append(ctx, "key", "Hello").Val()).To(Equal(int64(5)))
			Expect(client.Append(ctx, "key", " World").Val()).To(Equal(int64(11)))
			Expect(client.StrLen(ctx, "key").Val()).To(Equal(int64(11)))
			Expect(client.StrLen(ctx, "missing").Val()).To(BeZero())
		})

		It("should step counters", func() {
			Expect(client.Incr(ctx, "n").Val()).To(Equal(int64(1)))
			Expect(client.IncrBy(ctx, "n", 10).Val()).To(Equal(int64(11)))
			Expect(client.DecrBy(ctx, "n", 4).Val()).To(Equal(int64(7)))
			Expect(client.Decr(ctx, "n").Val()).To(Equal(int64(6)))
			Expect(client.IncrByFloat(ctx, "n", 0.5).Val()).To(Equal(6.5))
		})

		It("should reject counters on non numeric values", func() {
			Expect(client.Set(ctx, "text", "abc", 0).Err()).To(Succeed())

			Expect(client.Incr(ctx, "text").Err()).To(MatchError("ERR value is not an integer or out of range"))
			Expect(client.IncrByFloat(ctx, "text", 1).Err()).To(MatchError("ERR value is not a valid float"))
		})

		It("should refuse to overflow", func() {
			Expect(client.Set(ctx, "n", "9223372036854775807", 0).Err()).To(Succeed())

			Expect(client.Incr(ctx, "n").Err()).To(MatchError("ERR increment or decrement would overflow"))
		})
	})
})

var _ = Describe("Authentication", Ordered, func() {
	var ctx context.Context

	BeforeAll(func() {
		ctx = context.Background()
		startServer(server.Config{Address: "localhost:6402", Password: "s3cret"})
	})

	It("should require AUTH before commands", func() {
		anonymous := redis.NewClient(&redis.Options{Addr: "localhost:6402"})
		defer anonymous.Close()

		Expect(anonymous.Get(ctx, "key").Err()).To(MatchError("NOAUTH Authentication required."))
	})

	It("should reject a wrong password", func() {
		intruder := redis.NewClient(&redis.Options{Addr: "localhost:6402", Password: "guess"})
		defer intruder.Close()

		Expect(intruder.Ping(ctx).Err()).To(MatchError(ContainSubstring("WRONGPASS")))
	})

	It("should accept the configured password", func() {
		trusted := redis.NewClient(&redis.Options{Addr: "localhost:6402", Password: "s3cret"})
		defer trusted.Close()

		Expect(trusted.Set(ctx, "key", "value", 0).Err()).To(Succeed())
		Expect(trusted.Get(ctx, "key").Val()).To(Equal("value"))
	})
})
