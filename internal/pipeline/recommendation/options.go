package recommendation

import (
	"sort"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

// Options lists the sorted unique product categories of the rental lines and,
// for each category, the sorted unique asset descriptions.
func Options(records []domain.ReservationRecord) domain.AssetOptions {
	byCategory := make(map[string]map[string]struct{})
	for _, r := range records {
		if r.Product == "" {
			continue
		}
		assets, ok := byCategory[r.Product]
		if !ok {
			assets = make(map[string]struct{})
			byCategory[r.Product] = assets
		}
		if r.Description != "" {
			assets[r.Description] = struct{}{}
		}
	}

	opts := domain.AssetOptions{
		Categories: make([]string, 0, len(byCategory)),
		Assets:     make(map[string][]string, len(byCategory)),
	}
	for category, assets := range byCategory {
		opts.Categories = append(opts.Categories, category)
		list := make([]string, 0, len(assets))
		for a := range assets {
			list = append(list, a)
		}
		sort.Strings(list)
		opts.Assets[category] = list
	}
	sort.Strings(opts.Categories)

	return opts
}
