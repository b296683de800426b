package crawler

import (
	"github.com/Irishery/products-parser/internal/domain"
	"github.com/Irishery/products-parser/internal/normalize"
	"github.com/Irishery/products-parser/internal/selector"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// discoverModifiers resolves modifier groups on a product detail page and
// returns the group ids the product references. Groups are deduplicated
// by name across the whole run: a name seen before reuses the existing
// group instead of creating another.
func (c *Crawler) discoverModifiers(doc *html.Node) []int {
	var refs []int

	for _, groupNode := range c.queries.modGroup.Select(doc) {
		name := selector.Text(c.queries.modName.SelectOne(groupNode))
		if name == "" {
			continue
		}

		if existing, ok := c.groupsByName[name]; ok {
			refs = append(refs, existing.ID)
			continue
		}

		groupType := domain.GroupTypeMultiUnbounded
		if c.queries.modSubheader.SelectOne(groupNode) == nil {
			groupType = domain.GroupTypeSingleRequired
		}

		group := domain.NewModifierGroup(len(c.catalog.ModifierGroups)+1, name, groupType)
		c.parseOptions(groupNode, group)

		c.catalog.ModifierGroups = append(c.catalog.ModifierGroups, group)
		c.groupsByName[name] = group
		refs = append(refs, group.ID)
		log.Infof("+ modifier group %q (%s, %d options)", group.Name, group.Type, len(group.Modifiers))
	}

	return refs
}

// parseOptions extracts the group's options. Two page shapes exist: when
// the nested option-name query matches nothing inside the group, each
// option node carries its name as text and its price in a meta content
// attribute; otherwise name and price come from nested sub-queries.
func (c *Crawler) parseOptions(groupNode *html.Node, group *domain.ModifierGroup) {
	nested := len(c.queries.modOptionName.Select(groupNode)) > 0

	for _, option := range c.queries.modOption.Select(groupNode) {
		var name, priceText string
		if nested {
			name = selector.Text(c.queries.modOptionName.SelectOne(option))
			priceText = selector.Text(c.queries.modOptionPrice.SelectOne(option))
		} else {
			name = selector.Text(option)
			priceText = selector.Attr(firstElement(option, "meta"), "content")
		}
		if name == "" {
			continue
		}

		c.modifierSeq++
		modifier := &domain.Modifier{
			ID:    c.modifierSeq,
			Name:  name,
			Price: normalize.ParsePrice(priceText),
			Group: group.ID,
		}
		group.Modifiers = append(group.Modifiers, modifier)
	}
}

// firstElement finds the first descendant element with the given tag.
func firstElement(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == tag {
			return child
		}
		if found := firstElement(child, tag); found != nil {
			return found
		}
	}
	return nil
}
