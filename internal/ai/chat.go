package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sproutly/sproutly-backend/internal/plantctx"
)

// Upstream failure classes the chat endpoint surfaces with distinct HTTP
// statuses instead of a blanket 500.
var (
	ErrQuotaExhausted  = errors.New("quota_exhausted")
	ErrBillingRequired = errors.New("billing_required")
	ErrUpstream        = errors.New("upstream_error")
)

// ChatClient calls the Gemini REST endpoint directly. The official SDK hides
// HTTP status codes behind opaque errors; the raw call keeps 429 and 402
// distinguishable.
type ChatClient struct {
	apiKey string
	model  string
	client *http.Client
}

func NewChatClient(apiKey, model string, httpClient *http.Client) *ChatClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &ChatClient{apiKey: apiKey, model: model, client: httpClient}
}

type geminiCandidate struct {
	Content struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

const chatSystemPrompt = `You are Sprout, the friendly in-app guide of an environmental action tracker.
Users plant trees, care for plants, complete eco challenges and earn seeds.
Answer concisely and encouragingly. Stick to gardening, plant care, sustainability
and how the app works; politely steer unrelated questions back to those topics.`

const diseasePrompt = `The user suspects a plant disease. Identify the likely disease from the
description or photo, rate severity as mild, moderate or severe, and give
short actionable treatment steps.`

// ChatQuery is one chat turn. ImageData is an optional base64 JPEG/PNG for
// disease identification.
type ChatQuery struct {
	Message     string
	Language    string
	Context     string
	ImageData   string
	DiseaseMode bool
}

// Ask sends one question and returns the model's answer.
func (c *ChatClient) Ask(ctx context.Context, q ChatQuery) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: api key not configured", ErrUpstream)
	}
	rid := plantctx.RID(ctx)

	parts := []map[string]interface{}{
		{"text": chatSystemPrompt},
	}
	if q.DiseaseMode {
		parts = append(parts, map[string]interface{}{"text": diseasePrompt})
	}
	if q.Language != "" {
		parts = append(parts, map[string]interface{}{"text": "Answer in " + q.Language + "."})
	}
	if q.Context != "" {
		parts = append(parts, map[string]interface{}{"text": "Context: " + q.Context})
	}
	if q.ImageData != "" {
		parts = append(parts, map[string]interface{}{
			"inlineData": map[string]string{"mimeType": "image/jpeg", "data": q.ImageData},
		})
	}
	parts = append(parts, map[string]interface{}{"text": "Question: " + q.Message})

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.5,
			"maxOutputTokens": 512,
		},
	}
	body, _ := json.Marshal(payload)
	endpoint := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[chat] rid=%s stage=request_fail err=%v", rid, err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	log.Printf("[chat] rid=%s stage=response status=%d ms=%d", rid, resp.StatusCode, time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrQuotaExhausted
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrBillingRequired
	case resp.StatusCode >= 300:
		return "", fmt.Errorf("%w: gemini returned %d", ErrUpstream, resp.StatusCode)
	}

	var gResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gResp); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	answer := ""
	if len(gResp.Candidates) > 0 && len(gResp.Candidates[0].Content.Parts) > 0 {
		answer = gResp.Candidates[0].Content.Parts[0].Text
	}
	if answer == "" {
		return "", fmt.Errorf("%w: empty answer", ErrUpstream)
	}
	return answer, nil
}
