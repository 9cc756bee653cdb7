package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/koinbxtitas/crypto-frontend/cmd"
)

func main() {
	// .env is optional, deployments configure through real environment variables
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		log.Fatalf("could not start application: %v", err)
	}
}
