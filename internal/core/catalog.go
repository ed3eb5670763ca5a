package core

import "strings"

// Catalog is the fixed list of allowed category names per kind.
type Catalog struct {
	Income  []string
	Expense []string
}

// DefaultCatalog returns the built-in categories.
func DefaultCatalog() Catalog {
	return Catalog{
		Income:  []string{"Salário", "Freelance", "Investimentos", "Outros"},
		Expense: []string{"Alimentação", "Transporte", "Moradia", "Saúde", "Educação", "Lazer", "Outros"},
	}
}

// Categories returns a copy of the ordered list for kind.
func (c Catalog) Categories(k Kind) []string {
	var src []string
	switch k {
	case Income:
		src = c.Income
	case Expense:
		src = c.Expense
	}
	return append([]string(nil), src...)
}

func (c Catalog) Contains(k Kind, category string) bool {
	category = strings.TrimSpace(category)
	for _, name := range c.Categories(k) {
		if name == category {
			return true
		}
	}
	return false
}
