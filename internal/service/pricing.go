package service

import (
	"github.com/25260173/crema-cafe-demo/internal/domain"
)

// UnknownProductName labels cart lines whose product has left the catalog.
// The line is still priced (at zero) so the resolved sequence always has
// one entry per cart line.
const UnknownProductName = "unknown product"

// PricingService is the single source of truth for prices. Nothing else in
// the system recomputes a line total.
type PricingService struct {
	catalog Catalog
}

func NewPricingService(catalog Catalog) *PricingService {
	return &PricingService{
		catalog: catalog,
	}
}

// Resolve prices every cart line in cart order. Base price comes from the
// selected tier when the product defines it, falling back to the first
// tier; topping totals come from the denormalized snapshots on the entry,
// never from the live catalog.
func (s *PricingService) Resolve(lines []domain.CartLine, entries map[int64]domain.CustomizationEntry) []domain.PricedLine {
	out := make([]domain.PricedLine, 0, len(lines))

	for _, line := range lines {
		product, ok := s.catalog.FindProduct(line.ProductID)
		if !ok {
			out = append(out, domain.PricedLine{
				LineID:      line.LineID,
				ProductID:   line.ProductID,
				ProductName: UnknownProductName,
				Toppings:    []domain.ToppingRef{},
			})
			continue
		}

		entry := entries[line.LineID]

		basePrice := product.PriceFor(entry.SelectedVolume)

		toppingsTotal := 0
		toppings := entry.Toppings
		if toppings == nil {
			toppings = []domain.ToppingRef{}
		}
		for _, t := range toppings {
			toppingsTotal += t.Price
		}

		var volumeLabel string
		if tier, ok := product.TierFor(entry.SelectedVolume); ok {
			volumeLabel = tier.VolumeLabel
		}

		out = append(out, domain.PricedLine{
			LineID:         line.LineID,
			ProductID:      line.ProductID,
			ProductName:    product.Name,
			BasePrice:      basePrice,
			ToppingsTotal:  toppingsTotal,
			LineTotal:      basePrice + toppingsTotal,
			SelectedVolume: entry.SelectedVolume,
			VolumeLabel:    volumeLabel,
			Toppings:       toppings,
		})
	}

	return out
}

// Total sums the line totals of resolved lines.
func Total(lines []domain.PricedLine) int {
	total := 0
	for _, line := range lines {
		total += line.LineTotal
	}

	return total
}
