//go:build integration
// +build integration

package integration

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// init loads the nearest .env so integration tests can pick up the API token
// without requiring shell export. Existing env vars are not overwritten.
func init() {
	for _, p := range []string{
		".env",
		filepath.Join("..", ".env"),
		filepath.Join("..", "..", ".env"),
	} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}
