package normalize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{name: "clean integer", text: "450", expected: 450},
		{name: "currency suffix", text: "450 руб.", expected: 450},
		{name: "currency sign", text: "1 200 ₽", expected: 1200},
		{name: "decorated", text: "от 99₽", expected: 99},
		{name: "thousands with nbsp-like spacing", text: "12 500", expected: 12500},
		{name: "no digits", text: "цена по запросу", expected: 0},
		{name: "empty", text: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePrice(tt.text))
		})
	}
}

func TestParsePriceIdempotentOnCleanIntegers(t *testing.T) {
	for _, n := range []int{0, 1, 7, 42, 999, 100000} {
		assert.Equal(t, n, ParsePrice(fmt.Sprintf("%d", n)))
	}
}

func TestUnitIndex(t *testing.T) {
	tests := []struct {
		token    string
		expected int
	}{
		{token: "г", expected: 1},
		{token: "гр.", expected: 1},
		{token: "КГ", expected: 2},
		{token: "мл", expected: 3},
		{token: "л.", expected: 4},
		{token: "см", expected: 5},
		{token: "м", expected: 6},
		{token: "мин.", expected: 7},
		{token: "час", expected: 8},
		{token: "шт.", expected: 9},
		{token: "порц.", expected: 10},
		{token: "ед.", expected: 0},
		{token: "фунт", expected: -1},
		{token: "", expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnitIndex(tt.token))
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		expectedDesc  string
		expectedIndex int
	}{
		{name: "grams", text: "165 г", expectedDesc: "165 г", expectedIndex: 1},
		{name: "liters with fraction", text: "0.5 л", expectedDesc: "0.5 л", expectedIndex: 4},
		{name: "pieces with trailing text", text: "6 шт. в упаковке", expectedDesc: "6 шт.", expectedIndex: 9},
		{name: "no quantity", text: "no match", expectedDesc: "1", expectedIndex: 10},
		{name: "unknown unit", text: "2 фунта", expectedDesc: "1", expectedIndex: 10},
		{name: "empty", text: "", expectedDesc: "1", expectedIndex: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, index := ParseUnit(tt.text)
			assert.Equal(t, tt.expectedDesc, desc)
			assert.Equal(t, tt.expectedIndex, index)
		})
	}
}

func TestFixURL(t *testing.T) {
	base := "https://shop.example/catalog/"

	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{name: "relative path", link: "/products/1", expected: "https://shop.example/products/1"},
		{name: "absolute url", link: "https://cdn.example/img.png", expected: "https://cdn.example/img.png"},
		{name: "placeholder hash", link: "#", expected: ""},
		{name: "empty", link: "", expected: ""},
		{name: "single rune", link: "x", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FixURL(tt.link, base))
		})
	}
}
