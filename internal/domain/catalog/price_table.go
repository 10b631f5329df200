package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// FallbackUnitPriceStr is the unit price applied when a movement's product
// has no price record on file (or a zero price). A deliberate business
// default for bancas working on unregistered models, not an error path.
const FallbackUnitPriceStr = "3.50"

// FallbackUnitPrice returns the fallback unit price as a decimal
func FallbackUnitPrice() decimal.Decimal {
	d, _ := decimal.NewFromString(FallbackUnitPriceStr)
	return d
}

// PriceTable maps normalized product names to unit prices for one
// settlement run. Built once from the distinct product names observed in
// the candidate movements; lookups never hit the database.
type PriceTable struct {
	prices map[string]decimal.Decimal
}

// LoadPriceTable batch-loads prices for exactly the given product names
func LoadPriceTable(ctx context.Context, repo ProductRepository, productNames []string) (*PriceTable, error) {
	keys := make([]string, 0, len(productNames))
	seen := make(map[string]struct{}, len(productNames))
	for _, name := range productNames {
		key := NormalizeProductName(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	table := &PriceTable{prices: make(map[string]decimal.Decimal, len(keys))}
	if len(keys) == 0 {
		return table, nil
	}

	products, err := repo.FindByNameKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to load price table: %w", err)
	}
	for _, p := range products {
		table.prices[p.NameKey] = p.UnitPrice
	}
	return table, nil
}

// UnitPriceFor returns the unit price for a product name, falling back to
// FallbackUnitPrice when the product is absent or priced at zero
func (t *PriceTable) UnitPriceFor(productName string) decimal.Decimal {
	price, ok := t.prices[NormalizeProductName(productName)]
	if !ok || price.IsZero() {
		return FallbackUnitPrice()
	}
	return price
}

// Len returns the number of priced products in the table
func (t *PriceTable) Len() int {
	return len(t.prices)
}
