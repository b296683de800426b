package crawler

import (
	"context"
	"strconv"

	"github.com/Irishery/products-parser/internal/domain"
	"github.com/Irishery/products-parser/internal/normalize"
	"github.com/Irishery/products-parser/internal/selector"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// discoverProducts walks every category page in discovery order and
// collects detail-page URLs from the product teaser nodes. The politeness
// delay runs between category fetches, not between individual products.
func (c *Crawler) discoverProducts(ctx context.Context) ([]productRef, error) {
	start := 0
	if c.check != nil {
		last, err := c.check.LastCategory(ctx)
		if err != nil {
			log.Warnf("⚠️ Failed to read crawl checkpoint: %v", err)
		} else if last > 0 {
			log.Infof("🔄 Resuming from category %d", last+1)
			start = last
		}
	}

	var refs []productRef
	for i, category := range c.catalog.Categories {
		if i < start {
			continue
		}
		if category.URL == "" {
			continue
		}
		if i > start {
			if err := c.sleep(ctx); err != nil {
				return refs, err
			}
		}

		doc := c.fetcher.Fetch(ctx, category.URL)
		nodes := c.queries.productNode.Select(doc)
		log.Infof("Category %q: %d product nodes", category.Name, len(nodes))

		localIndex := 0
		for _, node := range nodes {
			href := selector.Attr(c.queries.productLink.SelectOne(node), "href")
			if href == "" {
				href = selector.Attr(node, "href")
			}
			url := normalize.FixURL(href, c.cfg.Shop.URL)
			if url == "" {
				log.Debug("Skipping teaser without a detail link")
				continue
			}

			localIndex++
			refs = append(refs, productRef{
				categoryID: category.ID,
				localIndex: localIndex,
				url:        url,
			})
		}

		if c.check != nil {
			if err := c.check.SetLastCategory(ctx, i+1); err != nil {
				log.Warnf("⚠️ Failed to save crawl checkpoint: %v", err)
			}
		}
	}

	return refs, nil
}

// enrichProducts fetches every discovered detail page and assembles the
// final products. A page without a name is skipped silently; every other
// missing field gets its documented default.
func (c *Crawler) enrichProducts(ctx context.Context, refs []productRef) error {
	for _, ref := range refs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		doc := c.fetcher.Fetch(ctx, ref.url)

		name := selector.Text(c.queries.name.SelectOne(doc))
		if name == "" {
			log.Warnf("⚠️ Skipping %s: no product name", ref.url)
			continue
		}

		id := productID(ref.categoryID, ref.localIndex, c.cfg.Crawler.ProductIDScale)
		product := &domain.Product{
			ID:          id,
			Name:        name,
			Description: selector.Text(c.queries.description.SelectOne(doc)),
			Picture:     c.picture(doc),
			Category:    ref.categoryID,
			Prices:      []domain.ProductPrice{c.price(doc, id)},
			Labels:      c.labels(doc),
		}

		if c.cfg.Crawler.Modifiers {
			product.Modifiers = c.discoverModifiers(doc)
		}

		c.catalog.Products[id] = product
		log.Infof("+ %s (id %d)", product.Name, product.ID)

		if c.sink != nil {
			if err := c.sink.SaveProduct(ctx, product); err != nil {
				log.Errorf("❌ Failed to persist product %d: %v", product.ID, err)
			}
		}
	}

	return nil
}

// price builds the product's first price parameter from the configured
// price, old-price and weight selectors.
func (c *Crawler) price(doc *html.Node, productID int) domain.ProductPrice {
	unitDescription, unitIndex := normalize.ParseUnit(selector.Text(c.queries.weight.SelectOne(doc)))

	return domain.ProductPrice{
		ID:              strconv.Itoa(productID + priceIDOffset),
		Price:           normalize.ParsePrice(selector.Text(c.queries.price.SelectOne(doc))),
		OldPrice:        normalize.ParsePrice(selector.Text(c.queries.oldPrice.SelectOne(doc))),
		UnitDescription: unitDescription,
		UnitIndex:       unitIndex,
	}
}

func (c *Crawler) picture(doc *html.Node) string {
	node := c.queries.picture.SelectOne(doc)
	return normalize.FixURL(selector.FirstAttr(node, "src", "data-src", "content"), c.cfg.Shop.URL)
}

func (c *Crawler) labels(doc *html.Node) []string {
	var labels []string
	for _, node := range c.queries.labels.Select(doc) {
		if text := selector.Text(node); text != "" {
			labels = append(labels, text)
		}
	}
	return labels
}
