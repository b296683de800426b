package crawler

import (
	"context"

	"github.com/Irishery/products-parser/internal/domain"
	"github.com/Irishery/products-parser/internal/normalize"
	"github.com/Irishery/products-parser/internal/selector"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// discoverMenu fetches the shop root and emits one category per direct
// element child of the menu container. Entries without a name are
// skipped. When sub-category discovery is enabled, each category's own
// page is fetched for additional entries.
func (c *Crawler) discoverMenu(ctx context.Context) error {
	doc := c.fetcher.Fetch(ctx, c.cfg.Shop.URL)

	container := c.queries.menuContainer.SelectOne(doc)
	if container == nil {
		log.Warnf("⚠️ Menu container %q not found on %s", c.queries.menuContainer, c.cfg.Shop.URL)
		return nil
	}

	for _, node := range selector.ElementChildren(container) {
		name := selector.Text(c.queries.menuName.SelectOne(node))
		if name == "" {
			continue
		}

		url := normalize.FixURL(c.entryHref(node, c.queries.menuLink), c.cfg.Shop.URL)
		category := domain.Category{
			ID:   c.ids.category(),
			Name: name,
			URL:  url,
		}
		c.catalog.Categories = append(c.catalog.Categories, category)
		log.Infof("+ category %q (id %d)", category.Name, category.ID)

		if c.cfg.Crawler.Subcategories && url != "" {
			c.discoverSubcategories(ctx, category)
		}
	}

	return nil
}

// discoverSubcategories fetches the category's own page and emits one
// child category per sub-list match, ids spaced off the parent's.
func (c *Crawler) discoverSubcategories(ctx context.Context, parent domain.Category) {
	doc := c.fetcher.Fetch(ctx, parent.URL)

	offset := 1
	for _, node := range c.queries.menuSub.Select(doc) {
		name := selector.Text(node)
		if name == "" {
			continue
		}

		sub := domain.Category{
			ID:       c.ids.subcategory(parent.ID, offset),
			Name:     name,
			URL:      normalize.FixURL(c.entryHref(node, c.queries.menuSubLink), c.cfg.Shop.URL),
			ParentID: parent.ID,
		}
		c.catalog.Categories = append(c.catalog.Categories, sub)
		log.Infof("+ subcategory %q (id %d, parent %d)", sub.Name, sub.ID, sub.ParentID)
		offset++
	}
}

// entryHref reads a menu entry's link either off the node itself or off
// a nested element, depending on whether a link selector is configured.
func (c *Crawler) entryHref(node *html.Node, link selector.Query) string {
	if link.IsZero() {
		return selector.Attr(node, "href")
	}
	return selector.Attr(link.SelectOne(node), "href")
}
