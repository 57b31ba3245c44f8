package cli_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
)

var _ = Describe("serve", func() {
	const address = "127.0.0.1:6407"

	It("should serve until the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stopped := make(chan error, 1)

		go func() {
			_, err := executeContext(ctx, "serve", "--address", address, "--password", "pw")
			stopped <- err
		}()

		client := redis.NewClient(&redis.Options{Addr: address, Password: "pw"})
		defer client.Close()

		Eventually(func() error {
			return client.Set(context.Background(), "a", "1", 0).Err()
		}, "5s", "20ms").Should(Succeed())

		Expect(client.Get(context.Background(), "a").Val()).To(Equal("1"))

		cancel()

		Eventually(stopped, "5s").Should(Receive(BeNil()))
	})
})
