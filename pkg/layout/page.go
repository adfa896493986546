package layout

import "fmt"

// Inset is the fixed margin in millimeters between the page edge and the
// drawn coordinate-system origin. Exported placement matrices are relative
// to this origin.
const Inset = 15.0

// Page is a standard paper size in landscape orientation, in millimeters
type Page struct {
	Name string
	W    float64
	H    float64
}

// Standard pages, landscape
var (
	A4 = Page{Name: "A4", W: 297, H: 210}
	A3 = Page{Name: "A3", W: 420, H: 297}
	A2 = Page{Name: "A2", W: 594, H: 420}
	A1 = Page{Name: "A1", W: 841, H: 594}
	A0 = Page{Name: "A0", W: 1189, H: 841}
)

// Pages lists the selectable page sizes, smallest first
func Pages() []Page {
	return []Page{A4, A3, A2, A1, A0}
}

// PageByName returns the page with the given name ("A4".."A0")
func PageByName(name string) (Page, error) {
	for _, page := range Pages() {
		if page.Name == name {
			return page, nil
		}
	}
	return Page{}, fmt.Errorf("unknown page size: %s", name)
}

// Center returns the page center in millimeters
func (p Page) Center() (x, y float64) {
	return p.W / 2, p.H / 2
}
