package gateway

import "time"

// User roles accepted by the backend.
const (
	RoleBuyer    = "buyer"
	RoleProducer = "producer"
)

// User is a backend account.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterInput is the payload for POST /register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Product is a listing offered by a producer at a location.
type Product struct {
	ID          int64     `json:"id"`
	ProducerID  int64     `json:"producerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductInput is the payload for POST /products. The producer is
// derived server-side from the bearer token.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// OrderLine is one product line in an order submission.
type OrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderInput is the payload for POST /orders.
type OrderInput struct {
	ProducerID int64       `json:"producerId"`
	Items      []OrderLine `json:"items"`
}

// OrderItem is one fulfilled line of a placed order.
type OrderItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a placed order as reported by GET /orders.
type Order struct {
	ID         int64       `json:"id"`
	Status     string      `json:"status"`
	TotalPrice float64     `json:"totalPrice"`
	CreatedAt  time.Time   `json:"createdAt"`
	Items      []OrderItem `json:"items"`
}

// ReviewInput is the payload for POST /products/{id}/reviews.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Review is a product review.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
