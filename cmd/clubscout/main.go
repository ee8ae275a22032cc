package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/campus-labs/clubscout-cli/internal/adapters/driving/cli"
)

func main() {
	// API keys are commonly kept in a local .env file; a missing file is
	// not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
