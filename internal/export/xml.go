package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Irishery/products-parser/internal/domain"
)

// escaper covers the five XML metacharacters for element content and
// attribute values. Description text bypasses it through CDATA.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

// BuildXML renders the catalog as a YML feed document. Offers appear in
// ascending product-id order so identical catalogs always serialize to
// identical bytes.
func BuildXML(catalog *domain.Catalog, now time.Time) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	fmt.Fprintf(&b, `<yml_catalog date="%s">`, now.Format("2006-01-02T15:04:05"))
	b.WriteString("<shop>")

	fmt.Fprintf(&b, "<name>%s</name>", escape(catalog.Name))
	fmt.Fprintf(&b, "<company>%s</company>", escape(catalog.Company))
	fmt.Fprintf(&b, "<url>%s</url>", escape(catalog.URL))
	fmt.Fprintf(&b, `<currencies><currency id="%s" rate="1"/></currencies>`, catalog.Currency)

	writeModifierGroups(&b, catalog.ModifierGroups)
	writeCategories(&b, catalog.Categories)
	writeOffers(&b, catalog)

	b.WriteString("</shop>")
	b.WriteString("</yml_catalog>")

	return b.String()
}

// writeModifierGroups emits the modifiersGroups and modifiers blocks,
// omitting both entirely when no groups were discovered.
func writeModifierGroups(b *strings.Builder, groups []*domain.ModifierGroup) {
	if len(groups) == 0 {
		return
	}

	b.WriteString("<modifiersGroups>")
	for _, group := range groups {
		fmt.Fprintf(b, `<modifiersGroup id="%d">`, group.ID)
		fmt.Fprintf(b, "<name>%s</name>", escape(group.Name))
		fmt.Fprintf(b, "<type>%s</type>", group.Type)
		fmt.Fprintf(b, "<minimum>%d</minimum>", group.Min)
		fmt.Fprintf(b, "<maximum>%d</maximum>", group.Max)
		b.WriteString("</modifiersGroup>")
	}
	b.WriteString("</modifiersGroups>")

	var mods strings.Builder
	for _, group := range groups {
		for _, modifier := range group.Modifiers {
			fmt.Fprintf(&mods, `<modifier id="%d" required="true">`, modifier.ID)
			fmt.Fprintf(&mods, "<name>%s</name>", escape(modifier.Name))
			fmt.Fprintf(&mods, "<price>%d</price>", modifier.Price)
			fmt.Fprintf(&mods, "<modifiersGroupId>%d</modifiersGroupId>", modifier.Group)
			mods.WriteString("</modifier>")
		}
	}
	if mods.Len() > 0 {
		fmt.Fprintf(b, "<modifiers>%s</modifiers>", mods.String())
	}
}

func writeCategories(b *strings.Builder, categories []domain.Category) {
	b.WriteString("<categories>")
	for _, category := range categories {
		parentAttr := ""
		if category.ParentID != 0 {
			parentAttr = fmt.Sprintf(` parent_id="%d"`, category.ParentID)
		}
		fmt.Fprintf(b, `<category id="%d"%s>%s</category>`, category.ID, parentAttr, escape(category.Name))
	}
	b.WriteString("</categories>")
}

// writeOffers emits one offer per named product. The parameters block is
// never omitted; a price without its own id falls back to the product id.
func writeOffers(b *strings.Builder, catalog *domain.Catalog) {
	b.WriteString("<offers>")
	for _, product := range sortedProducts(catalog) {
		if product.Name == "" {
			continue
		}

		fmt.Fprintf(b, `<offer id="%d" available="true">`, product.ID)
		fmt.Fprintf(b, "<name>%s</name>", escape(product.Name))

		if product.Description != "" {
			// a literal "]]>" would close the section early, split it
			// across two adjacent ones
			safe := strings.ReplaceAll(product.Description, "]]>", "]]]]><![CDATA[>")
			fmt.Fprintf(b, "<description><![CDATA[%s]]></description>", safe)
		} else {
			b.WriteString("<description></description>")
		}

		if product.Picture != "" {
			fmt.Fprintf(b, "<picture>%s</picture>", escape(product.Picture))
		}

		b.WriteString("<parameters>")
		for _, price := range product.Prices {
			paramID := price.ID
			if paramID == "" {
				paramID = strconv.Itoa(product.ID)
			}
			fmt.Fprintf(b, `<parameter id="%s">`, escape(paramID))
			fmt.Fprintf(b, "<price>%d</price>", price.Price)
			if price.OldPrice > 0 {
				fmt.Fprintf(b, "<old_price>%d</old_price>", price.OldPrice)
			}
			unitDescription := price.UnitDescription
			if unitDescription == "" {
				unitDescription = "1"
			}
			fmt.Fprintf(b, "<description>%s</description>", escape(unitDescription))
			fmt.Fprintf(b, "<descriptionIndex>%d</descriptionIndex>", price.UnitIndex)
			b.WriteString("</parameter>")
		}
		b.WriteString("</parameters>")

		fmt.Fprintf(b, "<categoryId>%d</categoryId>", product.Category)

		if len(product.Labels) > 0 {
			b.WriteString("<labelsIds>")
			for _, label := range product.Labels {
				fmt.Fprintf(b, "<labelId>%s</labelId>", escape(label))
			}
			b.WriteString("</labelsIds>")
		}

		if len(product.Modifiers) > 0 {
			b.WriteString("<modifiersGroupsIds>")
			for _, groupID := range product.Modifiers {
				fmt.Fprintf(b, "<modifiersGroupId>%d</modifiersGroupId>", groupID)
			}
			b.WriteString("</modifiersGroupsIds>")
		}

		b.WriteString("</offer>")
	}
	b.WriteString("</offers>")
}
