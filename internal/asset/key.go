// Package asset maps catalog products to their image assets: storage
// key derivation, phase-dependent URL resolution, and validation and
// normalization of uploaded image bytes.
package asset

import "regexp"

var keySeparators = regexp.MustCompile(`[^A-Za-z0-9]+`)

// DeriveKey maps a product name to its object-storage key. Every
// maximal run of characters outside [A-Za-z0-9] collapses to a single
// dash, so the key is a pure function of the current name and must be
// recomputed whenever the name changes.
func DeriveKey(name string) string {
	return keySeparators.ReplaceAllString(name, "-")
}
