package model

import "time"

// Product represents a catalog product. JSON names match the wire format
// existing clients already consume.
type Product struct {
	ID        string    `json:"_id"`
	ProductID string    `json:"Prod_ID"`
	Name      string    `json:"Name"`
	Price     float64   `json:"Price"`
	Featured  bool      `json:"Featured"`
	Rating    float64   `json:"Rating"`
	CreatedAt time.Time `json:"CreatedAt"`
	Company   string    `json:"Company"`
}

// CreateProductRequest is the body of an add-product request.
// Pointers distinguish a missing field from its zero value.
type CreateProductRequest struct {
	ProductID *string    `json:"Prod_ID" validate:"required,min=1,max=64"`
	Name      *string    `json:"Name" validate:"required,min=1,max=255"`
	Price     *float64   `json:"Price" validate:"required"`
	Featured  *bool      `json:"Featured"`
	Rating    *float64   `json:"Rating"`
	CreatedAt *time.Time `json:"CreatedAt"`
	Company   *string    `json:"Company" validate:"required,min=1,max=255"`
}

// UpdateProductRequest is a partial product update; nil fields are left as is.
type UpdateProductRequest struct {
	ProductID *string    `json:"Prod_ID" validate:"omitempty,min=1,max=64"`
	Name      *string    `json:"Name" validate:"omitempty,min=1,max=255"`
	Price     *float64   `json:"Price"`
	Featured  *bool      `json:"Featured"`
	Rating    *float64   `json:"Rating"`
	CreatedAt *time.Time `json:"CreatedAt"`
	Company   *string    `json:"Company" validate:"omitempty,min=1,max=255"`
}

// Apply merges the provided fields onto p.
func (u UpdateProductRequest) Apply(p *Product) {
	if u.ProductID != nil {
		p.ProductID = *u.ProductID
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.CreatedAt != nil {
		p.CreatedAt = *u.CreatedAt
	}
	if u.Company != nil {
		p.Company = *u.Company
	}
}

// MessageResponse is a short acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
