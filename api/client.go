// Package api is the HTTP client for the chat-lifecycle compatibility
// endpoints. The endpoints persist nothing; they exist for interface
// stability and, for create-chat, to echo the canonical chat object back.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/malonaz/chatd/chats"
)

// Client calls the compatibility endpoints at a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ chats.CompatClient = (*Client)(nil)

// NewClient instantiates a client. httpClient may be nil to use the default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// CreateChat POSTs /api/create-chat and returns the echoed chat.
func (c *Client) CreateChat(ctx context.Context, chat *chats.Chat) (*chats.Chat, error) {
	body := map[string]any{
		"userId":    chat.UserID,
		"title":     chat.Title,
		"model":     chat.Model,
		"projectId": chat.ProjectID,
	}
	var response struct {
		Chat *chats.Chat `json:"chat"`
	}
	if err := c.post(ctx, "/api/create-chat", body, &response); err != nil {
		return nil, err
	}
	if response.Chat == nil {
		return nil, errors.New("create-chat endpoint returned no chat")
	}
	return response.Chat, nil
}

// UpdateChatModel POSTs /api/update-chat-model.
func (c *Client) UpdateChatModel(ctx context.Context, chatID, model string) error {
	body := map[string]any{"chatId": chatID, "model": model}
	return c.post(ctx, "/api/update-chat-model", body, nil)
}

// ToggleChatPin POSTs /api/toggle-chat-pin.
func (c *Client) ToggleChatPin(ctx context.Context, chatID string, pinned bool) error {
	body := map[string]any{"chatId": chatID, "pinned": pinned}
	return c.post(ctx, "/api/toggle-chat-pin", body, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshaling request body")
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return errors.Wrapf(err, "calling %s", path)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}
	if response.StatusCode != http.StatusOK {
		var errorBody struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(responseBody, &errorBody); err == nil && errorBody.Error != "" {
			return errors.Errorf("%s returned %d: %s", path, response.StatusCode, errorBody.Error)
		}
		return errors.Errorf("%s returned %d", path, response.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return errors.Wrap(err, "unmarshaling response body")
	}
	return nil
}
