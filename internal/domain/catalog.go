package domain

// Category is one entry of the shop menu. ParentID is zero for top-level
// categories and references another category's ID for sub-categories.
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ParentID int    `json:"parent_id,omitempty"`
}

// ProductPrice is one priced variant of a product. Price is an integer
// amount parsed straight from the page text, no fractional handling.
type ProductPrice struct {
	ID              string `json:"id,omitempty"`
	Price           int    `json:"price"`
	OldPrice        int    `json:"old_price,omitempty"`
	UnitDescription string `json:"description"`
	UnitIndex       int    `json:"index"`
}

type Product struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Picture     string         `json:"picture,omitempty"`
	Category    int            `json:"category"`
	Prices      []ProductPrice `json:"price"`
	Labels      []string       `json:"labels,omitempty"`
	Modifiers   []int          `json:"modifiers,omitempty"`
}

// Catalog is the root object handed to the exporter. It is assembled by a
// single crawl run and never mutated once export begins.
type Catalog struct {
	Name           string           `json:"name"`
	Company        string           `json:"company"`
	URL            string           `json:"url"`
	Currency       string           `json:"currency"`
	Categories     []Category       `json:"categories"`
	Products       map[int]*Product `json:"products"`
	ModifierGroups []*ModifierGroup `json:"modifiers_groups"`
}

func NewCatalog(name, company, url string) *Catalog {
	return &Catalog{
		Name:     name,
		Company:  company,
		URL:      url,
		Currency: "RUR",
		Products: make(map[int]*Product),
	}
}
