package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/veriscope/veriscope/src/ai/core"
	"github.com/veriscope/veriscope/src/config"
	"github.com/veriscope/veriscope/src/search"
	"github.com/veriscope/veriscope/src/verify"
	"github.com/veriscope/veriscope/src/webserver"

	// provider registrations
	_ "github.com/veriscope/veriscope/src/ai/anthropic"
	_ "github.com/veriscope/veriscope/src/ai/gemini"
	_ "github.com/veriscope/veriscope/src/ai/openai"
)

func main() {
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)

	judge, err := core.NewClient(core.FactoryConfig{
		Provider:     cfg.Provider,
		Model:        cfg.Model,
		GeminiKey:    cfg.GeminiKey,
		OpenAIKey:    cfg.OpenAIKey,
		AnthropicKey: cfg.AnthropicKey,
	})
	if err != nil {
		// Model-backed endpoints will answer "server not configured"; the
		// heuristic endpoint keeps working.
		log.Printf("ai: %v", err)
		judge = nil
	} else {
		log.Printf("ai: provider %s ready", judge.Name())
	}

	var searcher search.Searcher
	if cfg.SearchKey != "" && cfg.SearchEngineID != "" {
		searcher = search.NewGoogle(cfg.SearchKey, cfg.SearchEngineID)
	} else {
		log.Printf("search: no credentials, verdicts will carry no web context")
	}

	svc := verify.New(judge, searcher, cfg.SearchMaxResults)

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: webserver.New(svc),
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("veriscope API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutCtx)
}
