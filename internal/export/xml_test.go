package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Irishery/products-parser/internal/config"
	"github.com/Irishery/products-parser/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *domain.Catalog {
	catalog := domain.NewCatalog("Тестовый магазин", "ООО Тест", "https://shop.example")
	catalog.Categories = []domain.Category{
		{ID: 1, Name: "Пицца", URL: "https://shop.example/pizza"},
		{ID: 2, Name: "Соусы", URL: "https://shop.example/sauces", ParentID: 1},
	}
	catalog.Products[1001] = &domain.Product{
		ID:       1001,
		Name:     "Маргарита",
		Category: 1,
		Prices: []domain.ProductPrice{
			{ID: "2001", Price: 450, UnitDescription: "520 г", UnitIndex: 1},
		},
	}
	return catalog
}

func TestBuildXMLEscapesElementContent(t *testing.T) {
	catalog := testCatalog()
	catalog.Products[1001].Name = `Соус <острый> & "фирменный" 'новый'`
	catalog.Products[1001].Description = `Описание с <b>разметкой</b> & "кавычками"`

	xml := BuildXML(catalog, time.Now())

	assert.Contains(t, xml, "<name>Соус &lt;острый&gt; &amp; &quot;фирменный&quot; &apos;новый&apos;</name>")
	// description is literal data, embedded markup survives verbatim
	assert.Contains(t, xml, `<description><![CDATA[Описание с <b>разметкой</b> & "кавычками"]]></description>`)
}

func TestBuildXMLSplitsCDATATerminatorInDescription(t *testing.T) {
	catalog := testCatalog()
	catalog.Products[1001].Description = `до ]]> после`

	xml := BuildXML(catalog, time.Now())

	assert.Contains(t, xml, `<description><![CDATA[до ]]]]><![CDATA[> после]]></description>`)
}

func TestBuildXMLSkipsUnnamedProducts(t *testing.T) {
	catalog := testCatalog()
	catalog.Products[3001] = &domain.Product{ID: 3001, Category: 1, Prices: []domain.ProductPrice{{Price: 100}}}

	xml := BuildXML(catalog, time.Now())

	assert.Equal(t, 1, strings.Count(xml, "<offer "))
	assert.NotContains(t, xml, `offer id="3001"`)
}

func TestBuildXMLParameterIDFallsBackToProductID(t *testing.T) {
	catalog := testCatalog()
	catalog.Products[1001].Prices = []domain.ProductPrice{{Price: 450, UnitDescription: "", UnitIndex: 10}}

	xml := BuildXML(catalog, time.Now())

	assert.Contains(t, xml, `<parameter id="1001">`)
	assert.Contains(t, xml, "<description>1</description>")
	assert.Contains(t, xml, "<descriptionIndex>10</descriptionIndex>")
}

func TestBuildXMLOldPrice(t *testing.T) {
	catalog := testCatalog()
	catalog.Products[1001].Prices[0].OldPrice = 520

	xml := BuildXML(catalog, time.Now())
	assert.Contains(t, xml, "<old_price>520</old_price>")

	catalog.Products[1001].Prices[0].OldPrice = 0
	assert.NotContains(t, BuildXML(catalog, time.Now()), "<old_price>")
}

func TestBuildXMLCategoryParentAttribute(t *testing.T) {
	xml := BuildXML(testCatalog(), time.Now())

	assert.Contains(t, xml, `<category id="1">Пицца</category>`)
	assert.Contains(t, xml, `<category id="2" parent_id="1">Соусы</category>`)
}

func TestBuildXMLModifierBlocksOmittedWhenEmpty(t *testing.T) {
	xml := BuildXML(testCatalog(), time.Now())

	assert.NotContains(t, xml, "<modifiersGroups>")
	assert.NotContains(t, xml, "<modifiers>")
}

func TestBuildXMLModifierBlocks(t *testing.T) {
	catalog := testCatalog()
	group := domain.NewModifierGroup(1, "Размер", domain.GroupTypeSingleRequired)
	group.Modifiers = append(group.Modifiers, &domain.Modifier{ID: 1, Name: "Большая", Price: 200, Group: 1})
	catalog.ModifierGroups = append(catalog.ModifierGroups, group)
	catalog.Products[1001].Modifiers = []int{1}

	xml := BuildXML(catalog, time.Now())

	assert.Contains(t, xml, `<modifiersGroup id="1">`)
	assert.Contains(t, xml, "<type>one_one</type>")
	assert.Contains(t, xml, "<minimum>1</minimum>")
	assert.Contains(t, xml, "<maximum>1</maximum>")
	assert.Contains(t, xml, `<modifier id="1" required="true">`)
	assert.Contains(t, xml, "<modifiersGroupId>1</modifiersGroupId>")
	assert.Contains(t, xml, "<modifiersGroupsIds><modifiersGroupId>1</modifiersGroupId></modifiersGroupsIds>")
}

func TestBuildXMLShopHeader(t *testing.T) {
	xml := BuildXML(testCatalog(), time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC))

	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, `<yml_catalog date="2026-08-28T12:30:00">`)
	assert.Contains(t, xml, `<currencies><currency id="RUR" rate="1"/></currencies>`)
	assert.True(t, strings.HasSuffix(xml, "</shop></yml_catalog>"))
}

func TestExportWritesXMLFile(t *testing.T) {
	dir := t.TempDir()
	exporter := New(config.ExportConfig{Format: "xml", Filename: filepath.Join(dir, "feed")})

	path, err := exporter.Export(testCatalog())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "feed.xml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "<offer "))
}

func TestExportWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	exporter := New(config.ExportConfig{Format: "json", Filename: filepath.Join(dir, "feed")})

	path, err := exporter.Export(testCatalog())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Currency string                     `json:"currency"`
		Products map[string]json.RawMessage `json:"products"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "RUR", decoded.Currency)
	assert.Contains(t, decoded.Products, "1001")
}

func TestExportWriteFailureIsHardError(t *testing.T) {
	exporter := New(config.ExportConfig{Format: "xml", Filename: "/nonexistent-dir/feed"})

	_, err := exporter.Export(testCatalog())
	assert.Error(t, err)
}
