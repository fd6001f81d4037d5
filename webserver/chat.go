package webserver

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/malonaz/chatd/internal/debug"
	"github.com/malonaz/chatd/llm"
	"github.com/malonaz/chatd/messages"
)

type chatRequest struct {
	Messages     []*messages.Message `json:"messages"`
	ChatID       string              `json:"chatId"`
	UserID       string              `json:"userId"`
	Model        string              `json:"model"`
	SystemPrompt string              `json:"systemPrompt"`
	EnableSearch bool                `json:"enableSearch"`
}

// handleChat proxies the conversation to the model and streams tokens back.
// Once streaming has begun, provider failures are forwarded down the
// stream's error channel instead of failing the request.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Messages) == 0 || req.ChatID == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Error, missing information")
		return
	}

	model := req.Model
	if model == "" {
		model = s.config.DefaultModel
	}
	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = s.config.SystemPrompt
	}

	client, err := s.newLLMClient(model)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conversation := make([]*llm.Message, 0, len(req.Messages))
	for _, message := range req.Messages {
		conversation = append(conversation, &llm.Message{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.config.RequestTimeout)*time.Second)
	defer cancel()

	stream, err := client.CreateTextGeneration(ctx, &llm.CreateTextGenerationRequest{
		Model:        model,
		Messages:     conversation,
		SystemPrompt: systemPrompt,
		EnableSearch: req.EnableSearch,
	})
	if err != nil {
		debug.GetLogger().Error("creating completion stream", "error", err, "model", model)
		writeInternalError(w, err)
		return
	}
	defer stream.Close()

	writer := newDataStreamWriter(w)
	finishReason := ""
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			debug.GetLogger().Error("streaming error", "error", err, "chat_id", req.ChatID)
			writer.Error(err.Error())
			writer.Finish("error")
			return
		}
		if event.Reasoning != "" {
			if err := writer.Reasoning(event.Reasoning); err != nil {
				return
			}
		}
		if event.Token != "" {
			if err := writer.Text(event.Token); err != nil {
				return
			}
		}
		if event.FinishReason != "" {
			finishReason = event.FinishReason
		}
	}
	writer.Finish(finishReason)
}
