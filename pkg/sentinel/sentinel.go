// Package sentinel holds shared sentinel errors returned by stores. Services
// translate them into coded domain errors at the boundary.
package sentinel

import "errors"

// ErrNotFound keeps store-level 404s consistent across memory and Redis
// implementations.
var ErrNotFound = errors.New("record not found")
