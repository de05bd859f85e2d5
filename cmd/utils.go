package cmd

import (
	"log"

	"github.com/joho/godotenv"
)

func LoadEnvFile(path string) {
	if path == "" {
		log.Printf("no env file specified, using os.Environ only")
		return
	}

	log.Printf("loading env from file %s", path)
	if err := godotenv.Load(path); err != nil {
		log.Fatalf("error loading .env file '%s': %v", path, err)
	}
}
