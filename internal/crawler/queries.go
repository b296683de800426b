package crawler

import (
	"github.com/Irishery/products-parser/internal/config"
	"github.com/Irishery/products-parser/internal/selector"
)

// queries holds every configured selector compiled once at startup.
// Optional selectors compile to zero queries that never match.
type queries struct {
	menuContainer selector.Query
	menuName      selector.Query
	menuLink      selector.Query
	menuSub       selector.Query
	menuSubLink   selector.Query

	productNode selector.Query
	productLink selector.Query
	name        selector.Query
	description selector.Query
	picture     selector.Query
	price       selector.Query
	oldPrice    selector.Query
	weight      selector.Query
	labels      selector.Query

	modGroup       selector.Query
	modName        selector.Query
	modSubheader   selector.Query
	modOption      selector.Query
	modOptionName  selector.Query
	modOptionPrice selector.Query
}

type queryCompiler struct {
	mode selector.Mode
	err  error
}

func (qc *queryCompiler) compile(raw string) selector.Query {
	if qc.err != nil {
		return selector.Query{}
	}
	q, err := selector.Compile(raw, qc.mode)
	if err != nil {
		qc.err = err
	}
	return q
}

func compileQueries(sel config.SelectorsConfig, mode selector.Mode) (*queries, error) {
	qc := &queryCompiler{mode: mode}
	q := &queries{
		menuContainer: qc.compile(sel.Menu.Container),
		menuName:      qc.compile(sel.Menu.Name),
		menuLink:      qc.compile(sel.Menu.Link),
		menuSub:       qc.compile(sel.Menu.Sub),
		menuSubLink:   qc.compile(sel.Menu.SubLink),

		productNode: qc.compile(sel.Product.Node),
		productLink: qc.compile(sel.Product.Link),
		name:        qc.compile(sel.Product.Name),
		description: qc.compile(sel.Product.Description),
		picture:     qc.compile(sel.Product.Picture),
		price:       qc.compile(sel.Product.Price),
		oldPrice:    qc.compile(sel.Product.OldPrice),
		weight:      qc.compile(sel.Product.Weight),
		labels:      qc.compile(sel.Product.Labels),

		modGroup:       qc.compile(sel.Modifiers.Group),
		modName:        qc.compile(sel.Modifiers.Name),
		modSubheader:   qc.compile(sel.Modifiers.Subheader),
		modOption:      qc.compile(sel.Modifiers.Option),
		modOptionName:  qc.compile(sel.Modifiers.OptionName),
		modOptionPrice: qc.compile(sel.Modifiers.OptionPrice),
	}
	if qc.err != nil {
		return nil, qc.err
	}
	return q, nil
}
