package gemini

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/mkravets/voicehire/internal/util"
)

const (
	defaultModel = "gemini-2.5-flash"

	retryBackoff = 2 * time.Second
)

// Generator wraps the Google GenAI client to provide simple prompt-based
// interactions with retries.
type Generator struct {
	client     *genai.Client
	modelName  string
	maxRetries int
	logger     *zap.Logger

	cacheMu      sync.RWMutex
	summaryCache map[string]string
}

// NewGenerator creates a Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:     client,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the first textual
// response, retrying transient failures with a linear backoff.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	return g.generateContent(ctx, prompt, nil)
}

// GenerateContentWithCache sends the prompt reusing a previously created
// cached content resource.
func (g *Generator) GenerateContentWithCache(ctx context.Context, prompt, cacheName string) (string, error) {
	cacheName = strings.TrimSpace(cacheName)
	if cacheName == "" {
		return g.generateContent(ctx, prompt, nil)
	}

	cfg := &genai.GenerateContentConfig{CachedContent: cacheName}
	return g.generateContent(ctx, prompt, cfg)
}

// EnsureSummaryCache stores the condensed catalog summary in a Gemini cached
// content resource, keyed by payload hash, so interactive sessions do not
// resend the vocabulary block on every command.
func (g *Generator) EnsureSummaryCache(ctx context.Context, payload string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return "", errors.New("catalog summary must not be empty")
	}

	hashBytes := sha256.Sum256([]byte(payload))
	hash := fmt.Sprintf("%x", hashBytes[:])

	g.cacheMu.RLock()
	name, ok := g.summaryCache[hash]
	g.cacheMu.RUnlock()
	if ok && name != "" {
		return name, nil
	}

	g.cacheMu.Lock()
	defer g.cacheMu.Unlock()

	if g.summaryCache == nil {
		g.summaryCache = make(map[string]string)
	}
	if name, ok := g.summaryCache[hash]; ok && name != "" {
		return name, nil
	}

	cfg := &genai.CreateCachedContentConfig{
		DisplayName: "catalog-summary-" + hash[:12],
		TTL:         time.Hour,
		Contents: []*genai.Content{{
			Role: genai.RoleUser,
			Parts: []*genai.Part{{
				Text: payload,
			}},
		}},
	}

	cached, err := g.client.Caches.Create(ctx, g.modelName, cfg)
	if err != nil {
		return "", fmt.Errorf("create catalog summary cache: %w", err)
	}

	name = strings.TrimSpace(cached.Name)
	if name == "" {
		return "", errors.New("gemini api returned empty cache name")
	}

	g.summaryCache[hash] = name
	return name, nil
}

func (g *Generator) generateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := util.WaitFor(ctx, time.Duration(attempt)*retryBackoff); err != nil {
				return "", err
			}
		}

		output, err := g.once(ctx, prompt, config)
		if err == nil {
			return output, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (g *Generator) once(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
