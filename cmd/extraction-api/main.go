// Package main provides the extraction-api server for travel document
// processing.
//
// This is a standalone REST API server around the entity extraction engine.
// It accepts OCR'd text or frame batches, stores the extraction results for
// the session, answers questions against stored results, and parses
// natural-language flight queries.
//
// Usage:
//
//	extraction-api [options]
//
// Options:
//
//	-port N             HTTP port (default: 8000, env: EXTRACTION_API_PORT)
//	-db PATH            SQLite mirror path (default: in-memory, env: EXTRACTION_DB)
//	-workers N          Frame extraction concurrency (default: 4)
//	-auth               Enable API key authentication
//	-api-keys KEYS      Comma-separated list of valid API keys
//
// API Endpoints:
//
//	GET /health
//	    Health check endpoint.
//
//	POST /api/v1/extract
//	    Extract entities. Body: {"filename": "...", "text": "..."} for a
//	    single text, or {"filename": "...", "frames": [...]} for a batch.
//
//	POST /api/v1/ask
//	    Answer a question against a stored result.
//	    Body: {"file_id": "...", "question": "..."}
//
//	POST /api/v1/parse-flight-query
//	    Parse a natural-language flight query.
//	    Body: {"query": "...", "current_date": "YYYY-MM-DD"}
//
//	GET /api/v1/jobs?limit=N
//	    List stored extraction jobs, newest first.
//
//	GET /api/v1/jobs/{file_id}
//	    Fetch one stored extraction result.
//
// Authentication:
//
//	When -auth is enabled, requests must include an API key via:
//	  - X-API-Key header
//	  - Authorization: Bearer <key> header
//	  - ?api_key=<key> query parameter
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"travel_parser/internal/api"
	"travel_parser/internal/store"
)

func main() {
	port := flag.Int("port", envOrDefaultInt("EXTRACTION_API_PORT", 8000), "HTTP port for API server")
	dbPath := flag.String("db", envOrDefault("EXTRACTION_DB", ""), "SQLite mirror path (empty: in-memory)")
	workers := flag.Int("workers", 4, "Frame extraction concurrency")
	authEnabled := flag.Bool("auth", false, "Enable API key authentication")
	apiKeys := flag.String("api-keys", "", "Comma-separated list of valid API keys (when auth enabled)")

	flag.Parse()

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	// Parse API keys.
	var keys []string
	if *apiKeys != "" {
		keys = strings.Split(*apiKeys, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
	}

	server := api.NewServer(st, api.Config{
		Port:        *port,
		Workers:     *workers,
		AuthEnabled: *authEnabled,
		APIKeys:     keys,
	})

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
