package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Cost carries both price points of a product. The wholesale price is only
// ever exposed to manager/admin callers.
type Cost struct {
	WholesalePrice float64 `json:"wholesale_price" bson:"wholesale_price"`
	RetailPrice    float64 `json:"retail_price" bson:"retail_price"`
}

// Product is a catalog item.
type Product struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Cost         Cost      `json:"cost" bson:"cost"`
	Availability int       `json:"availability" bson:"availability"`
	CategoryIDs  []string  `json:"category_ids" bson:"category_ids"`
	ImageIDs     []string  `json:"image_ids" bson:"image_ids"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
