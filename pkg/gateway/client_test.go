package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/locallink/locallink-go/pkg/gateway"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	for _, baseURL := range []string{"", "not-a-url", "ftp://host", "/relative"} {
		c, err := gateway.New(baseURL)
		require.Nil(t, c, "baseURL %q", baseURL)
		require.ErrorIs(t, err, gateway.ErrInvalidBaseURL, "baseURL %q", baseURL)
	}
}

func TestClient_BearerHeader(t *testing.T) {
	t.Parallel()

	t.Run("attached when a token is present", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotRequestID string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotRequestID = r.Header.Get("X-Request-ID")
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(gateway.User{ID: 1})
		}))
		defer srv.Close()

		c, err := gateway.New(srv.URL, gateway.WithTokenSource(func() (string, bool) {
			return "tok-123", true
		}))
		require.NoError(t, err)

		_, err = c.Me(context.Background())
		require.NoError(t, err)
		require.Equal(t, "Bearer tok-123", gotAuth)
		require.NotEmpty(t, gotRequestID)
	})

	t.Run("absent when no token is present", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte("[]"))
		}))
		defer srv.Close()

		c, err := gateway.New(srv.URL, gateway.WithTokenSource(func() (string, bool) {
			return "", false
		}))
		require.NoError(t, err)

		_, err = c.NearbyProducts(context.Background(), 25.18, 75.83, 20000)
		require.NoError(t, err)
		require.Empty(t, gotAuth)
	})
}

func TestClient_Unauthorized(t *testing.T) {
	t.Parallel()

	t.Run("401 invokes the hook once and still delivers the error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Invalid token"}`))
		}))
		defer srv.Close()

		var logouts atomic.Int32
		c, err := gateway.New(srv.URL, gateway.WithOnUnauthorized(func(context.Context) {
			logouts.Add(1)
		}))
		require.NoError(t, err)

		_, err = c.Me(context.Background())
		require.Error(t, err)

		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		require.True(t, apiErr.IsUnauthorized())
		require.Equal(t, "Invalid token", apiErr.Message)
		require.Equal(t, int32(1), logouts.Load())
	})

	t.Run("other error statuses do not invoke the hook", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Database error"}`))
		}))
		defer srv.Close()

		var logouts atomic.Int32
		c, err := gateway.New(srv.URL, gateway.WithOnUnauthorized(func(context.Context) {
			logouts.Add(1)
		}))
		require.NoError(t, err)

		_, err = c.Orders(context.Background())
		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusInternalServerError, apiErr.Status)
		require.Equal(t, "Database error", apiErr.Message)
		require.Zero(t, logouts.Load())
	})

	t.Run("non-JSON error body falls back to status text", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "teapot", http.StatusTeapot)
		}))
		defer srv.Close()

		c, err := gateway.New(srv.URL)
		require.NoError(t, err)

		_, err = c.Me(context.Background())
		var apiErr *gateway.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusText(http.StatusTeapot), apiErr.Message)
	})
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "amrita@example.com", body["email"])
		require.Equal(t, "hunter2", body["password"])

		json.NewEncoder(w).Encode(map[string]string{"token": "issued-token"})
	}))
	defer srv.Close()

	c, err := gateway.New(srv.URL)
	require.NoError(t, err)

	token, err := c.Login(context.Background(), "amrita@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "issued-token", token)
}

func TestClient_NearbyProducts(t *testing.T) {
	t.Parallel()

	t.Run("encodes coordinates and radius", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			require.Equal(t, "25.18", q.Get("lat"))
			require.Equal(t, "75.83", q.Get("lon"))
			require.Equal(t, "20000", q.Get("radius"))
			json.NewEncoder(w).Encode([]gateway.Product{{ID: 5, ProducerID: 2, Name: "Honey", Price: 12}})
		}))
		defer srv.Close()

		c, err := gateway.New(srv.URL)
		require.NoError(t, err)

		products, err := c.NearbyProducts(context.Background(), 25.18, 75.83, 20000)
		require.NoError(t, err)
		require.Len(t, products, 1)
		require.Equal(t, "Honey", products[0].Name)
	})

	t.Run("null body yields empty slice", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		}))
		defer srv.Close()

		c, err := gateway.New(srv.URL)
		require.NoError(t, err)

		products, err := c.NearbyProducts(context.Background(), 0, 0, 100)
		require.NoError(t, err)
		require.NotNil(t, products)
		require.Empty(t, products)
	})
}

func TestClient_Orders_NullBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	}))
	defer srv.Close()

	c, err := gateway.New(srv.URL)
	require.NoError(t, err)

	orders, err := c.Orders(context.Background())
	require.NoError(t, err)
	require.NotNil(t, orders)
	require.Empty(t, orders)
}

func TestClient_PlaceOrder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders", r.URL.Path)

		var in gateway.OrderInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, int64(2), in.ProducerID)
		require.Len(t, in.Items, 2)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(gateway.Order{ID: 42, Status: "pending", TotalPrice: 16.5})
	}))
	defer srv.Close()

	c, err := gateway.New(srv.URL)
	require.NoError(t, err)

	order, err := c.PlaceOrder(context.Background(), gateway.OrderInput{
		ProducerID: 2,
		Items: []gateway.OrderLine{
			{ProductID: 5, Quantity: 1},
			{ProductID: 6, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), order.ID)
	require.Equal(t, "pending", order.Status)
}

func TestClient_Reviews(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			require.Equal(t, "/products/5/reviews", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(gateway.Review{ID: 1, ProductID: 5, Rating: 4})
		default:
			require.Equal(t, "/products/5/reviews", r.URL.Path)
			json.NewEncoder(w).Encode([]gateway.Review{{ID: 1, ProductID: 5, Rating: 4}})
		}
	}))
	defer srv.Close()

	c, err := gateway.New(srv.URL)
	require.NoError(t, err)

	ctx := context.Background()
	review, err := c.CreateReview(ctx, 5, gateway.ReviewInput{Rating: 4, Comment: "good"})
	require.NoError(t, err)
	require.Equal(t, int64(1), review.ID)

	reviews, err := c.ProductReviews(ctx, 5)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
}
