package crawler

import (
	"context"
	"time"

	"github.com/Irishery/products-parser/internal/config"
	"github.com/Irishery/products-parser/internal/domain"
	"github.com/Irishery/products-parser/internal/fetcher"
	"github.com/Irishery/products-parser/internal/selector"

	log "github.com/sirupsen/logrus"
)

// ProductSink receives every enriched product, typically for database
// persistence. A nil sink disables persistence.
type ProductSink interface {
	SaveProduct(ctx context.Context, product *domain.Product) error
}

// Checkpoint stores crawl progress so an aborted run can resume without
// refetching finished categories. A nil checkpoint disables resumption.
type Checkpoint interface {
	LastCategory(ctx context.Context) (int, error)
	SetLastCategory(ctx context.Context, index int) error
	Clear(ctx context.Context) error
}

// Crawler walks a shop in four ordered stages — menu discovery, product
// discovery, detail enrichment, optional modifier discovery — and
// accumulates the catalog. All state is owned by the single Run call;
// nothing is shared across concurrent mutators.
type Crawler struct {
	cfg     *config.Config
	fetcher fetcher.Fetcher
	queries *queries
	sink    ProductSink
	check   Checkpoint

	ids          *idAllocator
	catalog      *domain.Catalog
	groupsByName map[string]*domain.ModifierGroup
	modifierSeq  int
}

// productRef is a detail-page URL discovered in S1, waiting for
// enrichment in S2. Category order and per-category position drive
// deterministic product ids.
type productRef struct {
	categoryID int
	localIndex int
	url        string
}

// New compiles the configured selectors and builds a crawler. Sink and
// checkpoint may be nil.
func New(cfg *config.Config, f fetcher.Fetcher, sink ProductSink, check Checkpoint) (*Crawler, error) {
	q, err := compileQueries(cfg.Selectors, selector.Mode(cfg.Crawler.SelectorMode))
	if err != nil {
		return nil, err
	}

	return &Crawler{
		cfg:     cfg,
		fetcher: f,
		queries: q,
		sink:    sink,
		check:   check,
	}, nil
}

// Run executes all stages and returns the assembled catalog. Individual
// item failures are skipped; a partial catalog is a valid result.
func (c *Crawler) Run(ctx context.Context) (*domain.Catalog, error) {
	c.ids = newIDAllocator(c.cfg.Crawler)
	c.catalog = domain.NewCatalog(c.cfg.Shop.Name, c.cfg.Shop.Company, c.cfg.Shop.URL)
	c.groupsByName = make(map[string]*domain.ModifierGroup)
	c.modifierSeq = 0

	log.Info("🔄 Stage 0: menu discovery")
	if err := c.discoverMenu(ctx); err != nil {
		return nil, err
	}
	log.Infof("✅ Found %d categories", len(c.catalog.Categories))

	log.Info("🔄 Stage 1: product discovery")
	refs, err := c.discoverProducts(ctx)
	if err != nil {
		return nil, err
	}
	log.Infof("✅ Found %d product pages", len(refs))

	log.Info("🔄 Stage 2: product enrichment")
	if err := c.enrichProducts(ctx, refs); err != nil {
		return nil, err
	}
	log.Infof("✅ Imported %d products", len(c.catalog.Products))

	if c.check != nil {
		if err := c.check.Clear(ctx); err != nil {
			log.Warnf("⚠️ Failed to clear crawl checkpoint: %v", err)
		}
	}

	return c.catalog, nil
}

// sleep waits the politeness delay between category fetches, returning
// early on cancellation.
func (c *Crawler) sleep(ctx context.Context) error {
	delay := time.Duration(c.cfg.Crawler.DelayMs) * time.Millisecond
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
