package handler

import (
	"github.com/nskopt/catalog-api/internal/core/domain"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

func toProductInput(req updateProductRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Cost: domain.Cost{
			WholesalePrice: req.Cost.WholesalePrice,
			RetailPrice:    req.Cost.RetailPrice,
		},
		Availability: req.Availability,
		ImageIDs:     req.ImageIDs,
	}
}

func toProductUserResponse(p domain.Product) productUserResponse {
	return productUserResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Cost.RetailPrice,
		Availability: p.Availability,
		CategoryIDs:  emptyIfNil(p.CategoryIDs),
		ImageIDs:     emptyIfNil(p.ImageIDs),
	}
}

func toProductAdminResponse(p domain.Product) productAdminResponse {
	return productAdminResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Cost: costResponse{
			WholesalePrice: p.Cost.WholesalePrice,
			RetailPrice:    p.Cost.RetailPrice,
		},
		Availability: p.Availability,
		CategoryIDs:  emptyIfNil(p.CategoryIDs),
		ImageIDs:     emptyIfNil(p.ImageIDs),
	}
}

// toProductResponse picks the projection matching the caller's role.
func toProductResponse(p domain.Product, admin bool) any {
	if admin {
		return toProductAdminResponse(p)
	}
	return toProductUserResponse(p)
}

func toProductListResponse(products []domain.Product, admin bool) []any {
	out := make([]any, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p, admin)
	}
	return out
}

// emptyIfNil keeps JSON arrays as [] instead of null.
func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
