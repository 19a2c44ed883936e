package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nkarpov/gemini-chat/api/http/presenter"
	"github.com/nkarpov/gemini-chat/pkg/llm"
	"github.com/nkarpov/gemini-chat/pkg/logging"
)

type ChatHandler struct {
	model  llm.ChatModel
	apiKey string
}

func NewChatHandler(model llm.ChatModel, apiKey string) *ChatHandler {
	return &ChatHandler{model: model, apiKey: apiKey}
}

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Client-facing messages for classified upstream failures.
const (
	msgMissingKey    = "Server configuration error: Missing API Key."
	msgInvalidJSON   = "Invalid JSON in request body."
	msgMissingPrompt = "Prompt is required."
	msgInvalidKey    = "Gemini API Key is not valid. Please check your .env.local file and ensure it's correct."
	msgQuota         = "API quota exceeded. Please check your Google Cloud console."
	msgModelNotFound = "The specified AI model was not found. Check the model name."
	msgFallback      = "An unexpected error occurred."
)

// Chat forwards a prompt to the Gemini API and relays the generated text.
// @Summary Generate a reply for a prompt
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body chatRequest true "chat payload"
// @Success 200 {object} chatResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 429 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	log := logging.L().WithField("requestId", uuid.New().String())

	if h.apiKey == "" {
		log.Error("GEMINI_API_KEY is not configured")
		return presenter.Error(c, http.StatusInternalServerError, msgMissingKey)
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("invalid JSON payload: %v", err)
		return presenter.Error(c, http.StatusBadRequest, msgInvalidJSON)
	}
	if req.Prompt == "" {
		return presenter.Error(c, http.StatusBadRequest, msgMissingPrompt)
	}
	log.Debugf("received prompt: %s", req.Prompt)

	reply, err := h.model.Generate(c.Context(), req.Prompt)
	if err != nil {
		return mapUpstreamError(c, log, err)
	}
	log.Debugf("gemini reply: %s", reply)

	return presenter.JSON(c, http.StatusOK, chatResponse{Reply: reply})
}

// mapUpstreamError converts an upstream failure into the client-facing
// status/message pair. Tagged errors are trusted; opaque ones fall back to
// message matching inside llm.Classify.
func mapUpstreamError(c *fiber.Ctx, log *logrus.Entry, err error) error {
	log.Errorf("chat request failed: %v", err)

	switch llm.Classify(err) {
	case llm.KindAuth:
		return presenter.Error(c, http.StatusUnauthorized, msgInvalidKey)
	case llm.KindQuota:
		return presenter.Error(c, http.StatusTooManyRequests, msgQuota)
	case llm.KindModelNotFound:
		return presenter.Error(c, http.StatusNotFound, msgModelNotFound)
	default:
		msg := err.Error()
		if msg == "" {
			msg = msgFallback
		}
		return presenter.Error(c, http.StatusInternalServerError, msg)
	}
}
