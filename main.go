package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/20mouhcine/jobgate-client/cmd/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
