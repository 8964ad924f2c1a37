// Package cart holds the visitor cart, which only ever lives in the local store.
package cart

// Item is a cart line.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
