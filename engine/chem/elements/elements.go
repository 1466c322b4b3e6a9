// Package elements maps atomic numbers to the display color and radius used
// when drawing atoms.
package elements

import (
	"strings"

	"github.com/hubastard/atomview/engine/colors"
)

// Element describes how one chemical element is drawn.
type Element struct {
	Number int
	Symbol string
	Color  colors.Color
	Radius float32 // covalent radius in Å
}

// Unknown is drawn for ids outside the table.
var Unknown = Element{Number: 0, Symbol: "X", Color: colors.RGB8(200, 100, 200), Radius: 0.70}

var bySymbol = func() map[string]int {
	m := make(map[string]int, len(table))
	for _, e := range table[1:] {
		m[strings.ToLower(e.Symbol)] = e.Number
	}
	return m
}()

// Lookup returns the element with atomic number id.
func Lookup(id int) (Element, bool) {
	if id <= 0 || id >= len(table) {
		return Unknown, false
	}
	return table[id], true
}

// BySymbol resolves a symbol such as "C", "cl" or "FE" to its atomic number.
func BySymbol(sym string) (int, bool) {
	n, ok := bySymbol[strings.ToLower(strings.TrimSpace(sym))]
	return n, ok
}

// Count reports how many elements the table knows.
func Count() int { return len(table) - 1 }

// Table adapts the package lookup to the renderer's table interface.
type Table struct{}

func (Table) Lookup(id int) (Element, bool) { return Lookup(id) }
