package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/betgenius/predictions-api/internal/models"
)

const defaultTriggerURL = "http://localhost:8080/functions/v1/generate-predictions"

// trigger fires one rollover, the way the daily scheduler does
func main() {
	logger, _ := zap.NewProduction()
	sugar := logger.Sugar()

	url := os.Getenv("TRIGGER_URL")
	if url == "" {
		url = defaultTriggerURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err := run(ctx, http.DefaultClient, url, os.Getenv("SERVICE_ROLE_KEY"), sugar)
	cancel()
	logger.Sync()
	if err != nil {
		sugar.Errorw("Rollover failed", "url", url, "error", err)
		os.Exit(1)
	}
}

// run POSTs one rollover and returns an error unless the function answers 200
func run(ctx context.Context, client *http.Client, url, key string, logger *zap.SugaredLogger) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var failure models.RolloverErrorResponse
		if json.Unmarshal(body, &failure) != nil || failure.Error == "" {
			return fmt.Errorf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s (%s)", resp.StatusCode, failure.Error, failure.Type)
	}

	var result models.RolloverResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	logger.Infow("Rollover completed",
		"message", result.Message,
		"inserted", len(result.Predictions),
	)
	return nil
}
