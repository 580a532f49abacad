// Command vaccines-api serves the vaccines reference catalog over HTTP and
// offers offline validation and search of a dataset.
package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/giygas/vaccines-api/logging"
)

// loadDotEnv reads .env from the working directory, falling back to the
// directory of the executable.
func loadDotEnv() {
	if err := godotenv.Load(); err == nil {
		return
	}

	ex, err := os.Executable()
	if err != nil {
		return
	}
	if err := godotenv.Load(filepath.Join(filepath.Dir(ex), ".env")); err != nil {
		logging.Debug("No .env file found, using the environment only")
	}
}

func main() {
	loadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
