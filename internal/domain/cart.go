package domain

type CartLine struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"user_id"`
	ProductID int64    `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

type Favorite struct {
	ID        int64    `json:"id"`
	UserID    int64    `json:"user_id"`
	ProductID int64    `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}
