package persistence_test

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// .env lives at the module root; tests run from this package directory.
	paths := []string{
		"../../../.env",
		"../../.env",
		".env",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				log.Printf("loaded .env from %s for tests", p)
				return
			}
		}
	}
}
