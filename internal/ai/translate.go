package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sproutly/sproutly-backend/internal/plantctx"
	"google.golang.org/genai"
)

// Translator turns a batch of UI strings into the target language. The
// output slice always has the same length and order as the input.
type Translator interface {
	Translate(ctx context.Context, texts []string, targetLanguage string) ([]string, error)
}

type GeminiTranslator struct {
	model string
}

func NewGeminiTranslator(model string) *GeminiTranslator {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiTranslator{model: model}
}

func (t *GeminiTranslator) Translate(ctx context.Context, texts []string, targetLanguage string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	rid := plantctx.RID(ctx)
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[translate] rid=%s stage=client_init err=%v", rid, err)
		return nil, err
	}

	src, _ := json.Marshal(texts)
	prompt := fmt.Sprintf(`Translate every string in the JSON array below into %s.
Return ONLY a JSON array of the translated strings, same length, same order.
Keep placeholders like %%s, %%d and {name} untouched. No prose, no markdown fences.
%s`, targetLanguage, string(src))

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	start := time.Now()
	res, err := client.Models.GenerateContent(ctx, t.model, contents, config)
	if err != nil {
		log.Printf("[translate] rid=%s stage=gemini_fail lang=%s err=%v", rid, targetLanguage, err)
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	out, err := parseTranslations(res.Text(), len(texts))
	if err != nil {
		log.Printf("[translate] rid=%s stage=parse_fail lang=%s err=%v", rid, targetLanguage, err)
		return nil, err
	}
	log.Printf("[translate] rid=%s stage=done lang=%s n=%d ms=%d", rid, targetLanguage, len(out), time.Since(start).Milliseconds())
	return out, nil
}

func parseTranslations(text string, want int) ([]string, error) {
	open := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if open < 0 || end <= open {
		return nil, fmt.Errorf("%w: no json array found", ErrParseFailed)
	}
	var out []string
	if err := json.Unmarshal([]byte(text[open:end+1]), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if len(out) != want {
		return nil, fmt.Errorf("%w: got %d translations, want %d", ErrParseFailed, len(out), want)
	}
	return out, nil
}

// CachingTranslator memoizes successful translations per (text, language)
// pair. Failed batches are not cached so a transient upstream error does not
// pin the fallback forever.
type CachingTranslator struct {
	inner Translator

	mu    sync.RWMutex
	cache map[string]string
}

func NewCachingTranslator(inner Translator) *CachingTranslator {
	return &CachingTranslator{inner: inner, cache: make(map[string]string)}
}

func cacheKey(text, lang string) string {
	return lang + "\x00" + text
}

func (t *CachingTranslator) Translate(ctx context.Context, texts []string, targetLanguage string) ([]string, error) {
	out := make([]string, len(texts))
	var missing []string
	var missingIdx []int

	t.mu.RLock()
	for i, text := range texts {
		if v, ok := t.cache[cacheKey(text, targetLanguage)]; ok {
			out[i] = v
		} else {
			missing = append(missing, text)
			missingIdx = append(missingIdx, i)
		}
	}
	t.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}
	translated, err := t.inner.Translate(ctx, missing, targetLanguage)
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	for i, v := range translated {
		out[missingIdx[i]] = v
		t.cache[cacheKey(missing[i], targetLanguage)] = v
	}
	t.mu.Unlock()
	return out, nil
}
