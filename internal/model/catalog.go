package model

import "time"

// Object is one imported manufacturing order: the parent record of a
// product catalog.
type Object struct {
	ID           int64     `json:"id"`
	ObjNumber    string    `json:"objNumber"`
	CreatedAt    time.Time `json:"createdAt"`
	Hidden       bool      `json:"hidden"`
	ProductCount int       `json:"productCount"`
}

// Product is one catalog entry of an object.
type Product struct {
	ID         int64  `json:"id"`
	ObjectID   int64  `json:"objectId"`
	ProdNumber string `json:"prodNumber"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
	Price      int64  `json:"price"` // wage per unit
	Parts      []Part `json:"parts,omitempty"`
}

// Part is one sub-component of a product. Price is the part's computed
// wage share with two decimal places, stored as text to keep it exact.
type Part struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// BlacklistPattern is one operator-maintained ignore pattern. Rows whose
// label matches any pattern are silently dropped during import.
type BlacklistPattern struct {
	ID        int64     `json:"id"`
	Pattern   string    `json:"pattern"`
	CreatedAt time.Time `json:"createdAt"`
}
