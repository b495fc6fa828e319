package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sproutly/sproutly-backend/internal/ai"
	"github.com/sproutly/sproutly-backend/internal/plantctx"
)

type AIHandler struct {
	chat       *ai.ChatClient
	translator ai.Translator
}

func NewAIHandler(chat *ai.ChatClient, translator ai.Translator) *AIHandler {
	return &AIHandler{chat: chat, translator: translator}
}

type chatRequest struct {
	Message     string `json:"message"`
	Language    string `json:"language"`
	Context     string `json:"context"`
	ImageData   string `json:"imageData,omitempty"`
	DiseaseMode bool   `json:"diseaseMode"`
}

// Chat surfaces upstream quota and billing failures with their own statuses
// so the client can show a useful message instead of a generic error.
func (h *AIHandler) Chat(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "message is required"))
	}
	ctx := plantctx.WithRID(c.Request().Context(), uuid.NewString())
	reply, err := h.chat.Ask(ctx, ai.ChatQuery{
		Message:     req.Message,
		Language:    req.Language,
		Context:     req.Context,
		ImageData:   req.ImageData,
		DiseaseMode: req.DiseaseMode,
	})
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrQuotaExhausted):
			return c.JSON(http.StatusTooManyRequests, NewErrorResponse("quota_exhausted", "AI quota exhausted, try again later"))
		case errors.Is(err, ai.ErrBillingRequired):
			return c.JSON(http.StatusPaymentRequired, NewErrorResponse("billing_required", "AI billing is not configured"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to generate answer"))
	}
	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}

type translateRequest struct {
	// Text is either a single JSON string or an array of strings; the
	// response mirrors the request shape.
	Text           json.RawMessage `json:"text"`
	TargetLanguage string          `json:"targetLanguage"`
	// SourceLanguage is accepted for client symmetry; the model auto-detects.
	SourceLanguage string `json:"sourceLanguage"`
}

func (h *AIHandler) Translate(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.TargetLanguage == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "targetLanguage is required"))
	}

	var texts []string
	single := false
	var one string
	if err := json.Unmarshal(req.Text, &one); err == nil {
		texts = []string{one}
		single = true
	} else if err := json.Unmarshal(req.Text, &texts); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "text must be a string or an array of strings"))
	}
	if len(texts) == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "text is required"))
	}

	ctx := plantctx.WithRID(c.Request().Context(), uuid.NewString())
	translated, err := h.translator.Translate(ctx, texts, req.TargetLanguage)
	if err != nil {
		// Translation is cosmetic: fall back to the originals instead of
		// failing the request.
		log.Printf("[translate] uid=%s lang=%s stage=fallback err=%v", uid, req.TargetLanguage, err)
		translated = texts
	}
	if single {
		return c.JSON(http.StatusOK, map[string]string{"translations": translated[0]})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"translations": translated})
}
