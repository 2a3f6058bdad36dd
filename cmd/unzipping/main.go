package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/xl-idp/unzipping/cmd/unzipping/commands"
)

func main() {
	// A .env next to the binary is a developer convenience; deployments set
	// the environment directly.
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
