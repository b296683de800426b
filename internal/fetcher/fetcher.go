package fetcher

import (
	"context"
	"crypto/tls"
	"strings"
	"time"

	"github.com/Irishery/products-parser/internal/config"
	"github.com/Irishery/products-parser/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"resty.dev/v3"
)

// Fetcher retrieves URLs as parsed HTML documents. Every failure mode
// degrades to an empty document: the caller's selector queries simply
// find nothing there.
type Fetcher interface {
	Fetch(ctx context.Context, url string) *html.Node
}

type fetcher struct {
	rl          ratelimit.Limiter
	httpClient  *resty.Client
	supplier    proxy.Supplier
	decoder     *encoding.Decoder
	maxAttempts int
	retryWait   time.Duration
}

// New builds a fetcher from the crawler configuration. The configured
// charset is resolved once; an unknown charset name falls back to
// decoding bytes as-is.
func New(cfg config.CrawlerConfig, supplier proxy.Supplier) Fetcher {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(0).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)").
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: true,
		})

	var decoder *encoding.Decoder
	if name := cfg.Charset; name != "" && !strings.EqualFold(name, "utf-8") {
		if enc, err := htmlindex.Get(name); err == nil {
			decoder = enc.NewDecoder()
		} else {
			log.Warnf("⚠️ Unknown charset %q, response bytes will be used as-is", name)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.RequestsPerSecond)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &fetcher{
		rl:          rl,
		httpClient:  client,
		supplier:    supplier,
		decoder:     decoder,
		maxAttempts: maxAttempts,
		retryWait:   time.Duration(cfg.RetryWaitMs) * time.Millisecond,
	}
}

// Fetch retrieves url with up to maxAttempts tries, a flat wait between
// them and a fresh proxy draw per attempt. All attempts failing returns
// an empty document, never an error.
func (f *fetcher) Fetch(ctx context.Context, url string) *html.Node {
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if f.supplier != nil {
			if proxyURL := f.supplier.Get(); proxyURL != "" {
				f.httpClient.SetProxy(proxyURL)
				log.Debugf("🔗 Attempt %d via proxy %s", attempt, proxyURL)
			}
		}

		f.rl.Take()

		resp, err := f.httpClient.R().
			SetContext(ctx).
			Get(url)

		if err == nil && !resp.IsError() {
			log.Debugf("Fetched %s on attempt %d", url, attempt)
			return f.parse(resp.Bytes())
		}

		if err != nil {
			log.Warnf("⚠️ Attempt %d/%d for %s failed: %v", attempt, f.maxAttempts, url, err)
		} else {
			log.Warnf("⚠️ Attempt %d/%d for %s failed: HTTP %d %s", attempt, f.maxAttempts, url, resp.StatusCode(), resp.Status())
		}

		if attempt == f.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			log.Warnf("⚠️ Fetch of %s cancelled: %v", url, ctx.Err())
			return emptyDocument()
		case <-time.After(f.retryWait):
		}
	}

	log.Errorf("❌ All %d attempts for %s failed, returning empty document", f.maxAttempts, url)
	return emptyDocument()
}

// parse decodes the response bytes through the configured charset and
// parses them. Decode errors keep the raw bytes; html.Parse itself
// tolerates arbitrary input.
func (f *fetcher) parse(raw []byte) *html.Node {
	text := raw
	if f.decoder != nil {
		if decoded, err := f.decoder.Bytes(raw); err == nil {
			text = decoded
		} else {
			log.Warnf("⚠️ Charset decode failed, parsing raw bytes: %v", err)
		}
	}

	doc, err := html.Parse(strings.NewReader(string(text)))
	if err != nil {
		log.Warnf("⚠️ HTML parse failed: %v", err)
		return emptyDocument()
	}
	return doc
}

func emptyDocument() *html.Node {
	doc, _ := html.Parse(strings.NewReader(""))
	return doc
}
