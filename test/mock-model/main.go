package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/app-sre/tabqa/internal/mockmodel"
)

func main() {
	addr := ":8090"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           mockmodel.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting mock model server on %s (TAPAS: %s, Gemini: /v1beta/models/{model}:generateContent)", addr, mockmodel.TapasPath)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Mock model server failed: %v", err)
	}
}
