package main

import (
	"log"

	"github.com/sharemark/sharemark/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ sharemark failed to start: %v", err)
	}
}
