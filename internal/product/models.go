package product

import "time"

// Product is the catalog resource exposed by the CRUD endpoints.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
