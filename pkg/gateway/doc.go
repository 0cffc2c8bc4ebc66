// Package gateway is the client's single outbound call path to the
// LocalLink backend REST API.
//
// The [Client] attaches the current bearer token (from a [TokenSource])
// to every request, decodes the backend's {"error": "..."} payloads
// into [APIError], and invokes the configured unauthorized hook exactly
// once per 401 response before returning the error — that hook is the
// only place a network response drives a session transition. All other
// statuses are propagated unmodified and nothing is retried.
//
// [OrderFromItems] converts cart contents into an order submission;
// [CartItemFromProduct] goes the other way when a buyer picks a nearby
// product.
package gateway
