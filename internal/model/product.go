package model

// Product is a catalog entry. ID is assigned by the store on insert.
type Product struct {
	ID   int64  `json:"ProductId" db:"ProductId"`
	Name string `json:"ProdName" db:"ProdName"`
}
