package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Register creates a new account. Role must be RoleBuyer or RoleProducer.
func (c *Client) Register(ctx context.Context, in RegisterInput) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/register", nil, in, &user)
	return user, err
}

// Login exchanges credentials for a bearer token. The token is returned
// to the caller, who decides whether to start a session with it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &user)
	return user, err
}

// NearbyProducts lists products within radiusMeters of the given
// coordinates. An absent or empty response body yields an empty slice.
func (c *Client) NearbyProducts(ctx context.Context, lat, lon float64, radiusMeters int) ([]Product, error) {
	query := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":    {strconv.FormatFloat(lon, 'f', -1, 64)},
		"radius": {strconv.Itoa(radiusMeters)},
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products/nearby", query, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// CreateProduct lists a new product for the authenticated producer.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	var product Product
	err := c.do(ctx, http.MethodPost, "/products", nil, in, &product)
	return product, err
}

// PlaceOrder submits an order to a single producer.
func (c *Client) PlaceOrder(ctx context.Context, in OrderInput) (Order, error) {
	var order Order
	err := c.do(ctx, http.MethodPost, "/orders", nil, in, &order)
	return order, err
}

// Orders lists the authenticated user's orders, most recent first as
// returned by the backend. An absent response body yields an empty slice.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// CreateReview posts a review for a product.
func (c *Client) CreateReview(ctx context.Context, productID int64, in ReviewInput) (Review, error) {
	var review Review
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/products/%d/reviews", productID), nil, in, &review)
	return review, err
}

// ProductReviews lists reviews for a product.
func (c *Client) ProductReviews(ctx context.Context, productID int64) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/reviews", productID), nil, nil, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}
