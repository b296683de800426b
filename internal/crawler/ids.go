package crawler

import (
	"math/rand"
	"time"

	"github.com/Irishery/products-parser/internal/config"
)

// priceIDOffset is added to a product's id to derive its first price
// parameter id, keeping parameters traceable back to their offer.
const priceIDOffset = 1000

// idAllocator assigns category identifiers. Sequential mode counts up
// from the configured start id; random mode draws multiples of ten within
// the configured range. Both modes track every issued id so no two
// categories, sub-categories included, ever share one.
type idAllocator struct {
	sequential bool
	next       int
	min, max   int
	used       map[int]bool
	rand       *rand.Rand
}

func newIDAllocator(cfg config.CrawlerConfig) *idAllocator {
	start := cfg.StartID
	if start < 1 {
		start = 1
	}
	return &idAllocator{
		sequential: cfg.CategoryIDMode != "random",
		next:       start,
		min:        cfg.RandomIDMin,
		max:        cfg.RandomIDMax,
		used:       make(map[int]bool),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// category issues the next top-level category id.
func (a *idAllocator) category() int {
	if a.sequential {
		for a.used[a.next] {
			a.next++
		}
		id := a.next
		a.used[id] = true
		a.next++
		return id
	}

	steps := (a.max - a.min) / 10
	if steps < 1 {
		steps = 1
	}
	for tries := 0; tries < steps*10; tries++ {
		id := a.min + a.rand.Intn(steps)*10
		if !a.used[id] {
			a.used[id] = true
			return id
		}
	}

	// the multiple-of-ten pool is exhausted, scan upward for any free id
	for id := a.min; ; id++ {
		if !a.used[id] {
			a.used[id] = true
			return id
		}
	}
}

// subcategory issues parent+offset, skipping forward past any id a
// previous draw already took, and records the result so later
// allocation stays clear of it.
func (a *idAllocator) subcategory(parent, offset int) int {
	id := parent + offset
	for a.used[id] {
		id++
	}
	a.used[id] = true
	return id
}

// productID derives a product id from its category and position. The
// scale keeps per-category id ranges disjoint as long as it exceeds the
// largest products-per-category count.
func productID(categoryID, localIndex, scale int) int {
	return categoryID*scale + localIndex
}
