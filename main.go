package main

import (
	"github.com/joho/godotenv"

	"github.com/dondigital/storefront/cmd"
	_ "github.com/dondigital/storefront/cmd/cli"
	_ "github.com/dondigital/storefront/cmd/server"
)

func main() {
	// Optional .env for local development; hosted environments inject the
	// variables directly.
	_ = godotenv.Load()

	cmd.Execute()
}
