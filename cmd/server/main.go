package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatbox-backend/internal/config"
	"chatbox-backend/internal/handlers"
	"chatbox-backend/internal/router"
	"chatbox-backend/internal/services"
	"chatbox-backend/internal/store"
	"chatbox-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Chatbox Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		float32(cfg.AITemperature),
		cfg.GeminiConcurrentReqs,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (model: %s)", cfg.GeminiModel)

	// ──── Step 3: Initialize Conversation Store ────
	messageStore := store.NewMemoryStore()
	log.Println("✓ In-memory conversation store ready")

	// ──── Step 4: Start WebSocket Hub ────
	wsHub := websocket.NewHub()
	log.Println("✓ WebSocket hub started")

	// ──── Step 5: Initialize Chat Service ────
	chatService := services.NewChatService(
		messageStore,
		geminiService,
		wsHub,
		cfg.ChatContextWindow,
		cfg.AIRequestTimeout,
	)
	chatHandler := handlers.NewChatHandler(chatService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, wsHub, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AIRequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Chatbox Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/messages", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
