// backend-go/internal/domain/errors.go
package domain

import "errors"

// Scope-resolution and data errors. These are terminal for the whole
// request and map to 404-equivalent responses; their messages are
// user-facing.
var (
	ErrNoDepots          = errors.New("no depots found under this distillery")
	ErrNoRetailShops     = errors.New("no retail shops found for this depot")
	ErrNoDepotSales      = errors.New("no retail sales found for this depot")
	ErrNoDistillerySales = errors.New("no retail sales found for this distillery")
)

// IsNotFound reports whether err is one of the scope or data errors
// that surface as a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNoDepots) ||
		errors.Is(err, ErrNoRetailShops) ||
		errors.Is(err, ErrNoDepotSales) ||
		errors.Is(err, ErrNoDistillerySales)
}
