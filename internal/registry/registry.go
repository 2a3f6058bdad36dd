// Package registry resolves validated taxpayer identifiers against national
// business registries. Each supported country contributes a checksum
// validator and a resolver; resolvers scrape or call public registry
// endpoints and normalize the result into an Identity.
package registry

import (
	"context"
	"errors"
)

// Country tags an identifier format and its registry.
type Country string

const (
	CountryRussia     Country = "russia"
	CountryKazakhstan Country = "kazakhstan"
	CountryBelarus    Country = "belarus"
	CountryUzbekistan Country = "uzbekistan"
)

// Identity is the resolved company record. Empty fields mean the registry
// did not expose that attribute.
type Identity struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Empty reports whether nothing was resolved.
func (id Identity) Empty() bool {
	return id.Name == "" && id.Phone == "" && id.Email == ""
}

var (
	// ErrUnavailable means the registry endpoint answered with a non-2xx
	// status or could not be reached after retrying.
	ErrUnavailable = errors.New("registry: source unavailable")

	// ErrNotFound means the registry answered but has no record for the id.
	ErrNotFound = errors.New("registry: taxpayer id not found")
)

// Resolver looks up one country's registry.
type Resolver interface {
	Country() Country
	Resolve(ctx context.Context, taxpayerID string) (Identity, error)
}
