package catalog

import (
	"time"

	"bitzone/internal/models"
)

// ProductView is the external product representation. Its id is the
// carrier-assigned roapp id; the storage-internal _id never leaves the
// backend.
type ProductView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Images      []string  `json:"images"`
	Description string    `json:"description,omitempty"`
	Specs       []string  `json:"specs"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Project reshapes a stored document into the external view. Optional list
// fields come back as empty slices so the frontend never sees null.
func Project(p models.Product) ProductView {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	specs := []string(p.Specs)
	if specs == nil {
		specs = []string{}
	}

	return ProductView{
		ID:          p.RoappID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		Images:      images,
		Description: p.Description,
		Specs:       specs,
		CreatedAt:   p.CreatedAt,
	}
}

// ProjectAll maps a result page, keeping an empty page as [] in JSON.
func ProjectAll(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, Project(p))
	}
	return views
}
