package catalog

import (
	"github.com/storekit/storeplan/internal/core/registry"
)

// =============================================================================
// Sample Shop Catalog
// =============================================================================

// SampleShop returns the built-in catalog for the sample e-commerce
// application: a storefront UI in front of catalog, carts, orders, and
// checkout services, each with its own backing-store needs.
//
// orders requests a dedicated relational store; everything else shares the
// provider instance for its kind.
func SampleShop() []ServiceSpec {
	return []ServiceSpec{
		{
			Name:      "ui",
			Exposure:  ExposureExternal,
			Resources: ResourceHints{CPU: "small", Memory: "small"},
		},
		{
			Name:     "catalog",
			Exposure: ExposureInternal,
			Required: []DependencyRef{
				{Kind: registry.KindRelationalStore, Access: AccessRead},
			},
			Resources: ResourceHints{CPU: "small", Memory: "small"},
		},
		{
			Name:     "carts",
			Exposure: ExposureInternal,
			Required: []DependencyRef{
				{Kind: registry.KindDocumentStore, Access: AccessWrite},
			},
			Resources: ResourceHints{CPU: "small", Memory: "medium"},
		},
		{
			Name:     "orders",
			Exposure: ExposureInternal,
			Required: []DependencyRef{
				{Kind: registry.KindRelationalStore, Access: AccessWrite, Dedicated: true},
				{Kind: registry.KindQueue, Access: AccessWrite},
			},
			Resources: ResourceHints{CPU: "medium", Memory: "medium"},
		},
		{
			Name:     "checkout",
			Exposure: ExposureInternal,
			Required: []DependencyRef{
				{Kind: registry.KindCache, Access: AccessWrite},
			},
			Optional: []DependencyRef{
				{Kind: registry.KindQueue, Access: AccessWrite},
			},
			Resources: ResourceHints{CPU: "small", Memory: "small"},
		},
	}
}
