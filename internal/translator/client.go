package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	ErrEmptyText           = errors.New("empty text")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNetwork             = errors.New("translation service unreachable")
	ErrService             = errors.New("translation service error")
	ErrRateLimited         = errors.New("translation rate limited")
)

// request/response - строгий контракт с внешним сервисом перевода.
// Все, что не влезает в эту форму, считается ErrService.
type request struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type response struct {
	TranslatedText string `json:"translated_text"`
	Error          string `json:"error,omitempty"`
}

// Stats - счетчики использования для /api/stats
type Stats struct {
	APICalls    int `json:"api_calls"`
	DictHits    int `json:"dict_hits"`
	CachedCount int `json:"cached_count"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger

	mu       sync.Mutex
	cache    map[string]string // text+lang -> перевод
	apiCalls int
	dictHits int
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
		cache:      make(map[string]string),
	}
}

// Translate переводит text на язык target.
// Порядок: справочник фраз -> кэш -> внешний сервис. Код языка проверяется
// до любой сетевой активности.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if !IsSupported(target) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, target)
	}

	if tr, ok := lookupDictionary(text, target); ok {
		c.mu.Lock()
		c.dictHits++
		c.mu.Unlock()
		return tr, nil
	}

	cacheKey := text + "\x00" + target
	c.mu.Lock()
	if tr, ok := c.cache[cacheKey]; ok {
		c.mu.Unlock()
		return tr, nil
	}
	c.mu.Unlock()

	tr, err := c.callService(ctx, text, target)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.cache[cacheKey] = tr
	c.mu.Unlock()
	return tr, nil
}

func (c *Client) callService(ctx context.Context, text, target string) (string, error) {
	body, err := json.Marshal(request{Text: text, TargetLang: target})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.mu.Lock()
	c.apiCalls++
	c.mu.Unlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сюда попадает и таймаут - для вызывающего это одно и то же
		c.logger.Warn("translation transport failure", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("translation service returned error status", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrService, resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: malformed payload: %v", ErrService, err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrService, parsed.Error)
	}
	if strings.TrimSpace(parsed.TranslatedText) == "" {
		return "", fmt.Errorf("%w: empty translation in payload", ErrService)
	}

	return parsed.TranslatedText, nil
}

func (c *Client) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		APICalls:    c.apiCalls,
		DictHits:    c.dictHits,
		CachedCount: len(c.cache),
	}
}

// ClearCache сбрасывает кэш переводов (ручное действие из UI)
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]string)
}
