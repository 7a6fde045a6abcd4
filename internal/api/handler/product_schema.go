package handler

// --- Request types ---

type costRequest struct {
	WholesalePrice float64 `json:"wholesale_price" validate:"gte=0"`
	RetailPrice    float64 `json:"retail_price"    validate:"required,gt=0"`
}

type updateProductRequest struct {
	Name         string      `json:"name"         validate:"required,min=3,max=16"`
	Description  string      `json:"description"`
	Cost         costRequest `json:"cost"         validate:"required"`
	Availability int         `json:"availability" validate:"gte=0"`
	ImageIDs     []string    `json:"image_ids"    validate:"min=1"`
}

type updateIDsRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// --- Response types ---
//
// Two projections of the same product: the user view exposes only the retail
// price (as "price"); the admin view carries the full cost. Which one a
// caller gets depends on their role, decided per request.

type costResponse struct {
	WholesalePrice float64 `json:"wholesale_price"`
	RetailPrice    float64 `json:"retail_price"`
}

type productUserResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Availability int      `json:"availability"`
	CategoryIDs  []string `json:"category_ids"`
	ImageIDs     []string `json:"image_ids"`
}

type productAdminResponse struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Cost         costResponse `json:"cost"`
	Availability int          `json:"availability"`
	CategoryIDs  []string     `json:"category_ids"`
	ImageIDs     []string     `json:"image_ids"`
}
