package main

import (
	"log"

	"github.com/MrSnakeDoc/playlist/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ playlist failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ playlist stopped with error: %v", err)
	}
}
