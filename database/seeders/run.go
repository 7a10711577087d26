// Package seeders provides a registry of store seed functions.
//
// Usage (define a seeder in any file in this package):
//
//	func init() {
//	    seeders.Register("artisans", SeedArtisans)
//	}
//
//	func SeedArtisans(repo *repositories.Repository) error {
//	    // create records ...
//	    return nil
//	}
//
// Then run via CLI: kalakaksh db:seed
package seeders

import (
	"fmt"
	"sync"

	"github.com/kalakaksh/backend/app/repositories"
)

// SeederFunc is the signature for a seed function. Seeders go through the
// repository so they work against any store driver.
type SeederFunc func(repo *repositories.Repository) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
// Call this from init() in your seeder files.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order.
// It stops on the first error.
func RunAll(repo *repositories.Repository) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Println("  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Printf("  Running seeder: %s ... ", e.name)
		if err := e.fn(repo); err != nil {
			fmt.Println("FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Println("done")
	}
	return nil
}
