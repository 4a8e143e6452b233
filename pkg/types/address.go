package types

import "strings"

// ShippingAddress is the destination captured at checkout. It is stored on
// the order as an immutable snapshot.
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// HasRequiredFields reports whether the fields that gate checkout submission
// are present. Postal code and country intentionally do not gate; this
// mirrors the storefront's historical behavior.
func (a ShippingAddress) HasRequiredFields() bool {
	return strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.Address) != "" &&
		strings.TrimSpace(a.City) != ""
}
