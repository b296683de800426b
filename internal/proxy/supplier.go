package proxy

import (
	"context"
	"crypto/tls"
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

// Supplier hands out one egress proxy endpoint per draw. Get returns ""
// when no proxies are available, which callers treat as "no proxy".
type Supplier interface {
	Get() string
}

type supplier struct {
	proxies []string
	mutex   sync.Mutex
	rand    *rand.Rand
}

// NewSupplier validates the candidate endpoints against the shop root and
// keeps the working ones. Draws are uniformly random, a fresh one per
// fetch attempt.
func NewSupplier(ctx context.Context, proxies []string, testURL string) (Supplier, error) {
	s := &supplier{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if len(proxies) == 0 {
		return s, nil
	}

	log.Infof("🔄 Testing %d proxies in parallel...", len(proxies))

	valid := make([]string, 0, len(proxies))
	validCh := make(chan string, len(proxies))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(50)

	for _, proxyURL := range proxies {
		g.Go(func() error {
			if isProxyValid(ctx, proxyURL, testURL) {
				validCh <- proxyURL
				log.Infof("✅ Proxy %s is working", proxyURL)
			} else {
				log.Infof("❌ Proxy %s is not working, skipping", proxyURL)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(validCh)

	for proxyURL := range validCh {
		valid = append(valid, proxyURL)
	}

	log.Infof("✅ Proxy supplier initialized with %d working proxies out of %d tested", len(valid), len(proxies))

	s.proxies = valid
	return s, nil
}

// Get returns a uniformly random proxy endpoint
func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.proxies) == 0 {
		return ""
	}
	return s.proxies[s.rand.Intn(len(s.proxies))]
}

// isProxyValid tests if a proxy can successfully make a request to the test URL
func isProxyValid(ctx context.Context, proxyURL, testURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0).
		SetProxy(proxyURL).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(testURL)

	if err != nil {
		log.Infof("Proxy test failed for %s: %v", proxyURL, err)
		return false
	}

	if resp.IsError() {
		log.Infof("Proxy test failed for %s with status: %s", proxyURL, resp.Status())
		return false
	}

	return true
}
