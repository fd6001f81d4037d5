package webserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// dataStreamWriter emits the AI SDK data-stream protocol: newline-delimited
// parts, each a type prefix, a colon and a JSON payload. Tokens are `0:`,
// reasoning `g:`, sources `h:`, errors `3:` and the finish part `d:`.
type dataStreamWriter struct {
	w       io.Writer
	flusher http.Flusher
}

func newDataStreamWriter(w http.ResponseWriter) *dataStreamWriter {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Vercel-AI-Data-Stream", "v1")
	flusher, _ := w.(http.Flusher)
	return &dataStreamWriter{w: w, flusher: flusher}
}

func (d *dataStreamWriter) part(prefix string, payload any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(d.w, "%s:%s\n", prefix, encoded); err != nil {
		return err
	}
	if d.flusher != nil {
		d.flusher.Flush()
	}
	return nil
}

// Text streams a token delta.
func (d *dataStreamWriter) Text(token string) error {
	return d.part("0", token)
}

// Reasoning streams a reasoning delta.
func (d *dataStreamWriter) Reasoning(token string) error {
	return d.part("g", token)
}

// Source forwards source metadata inline.
func (d *dataStreamWriter) Source(source any) error {
	return d.part("h", source)
}

// Error forwards a failure down the stream's error channel rather than
// failing the response.
func (d *dataStreamWriter) Error(message string) error {
	return d.part("3", message)
}

// Finish terminates the stream with a finish reason.
func (d *dataStreamWriter) Finish(reason string) error {
	if reason == "" {
		reason = "stop"
	}
	return d.part("d", map[string]any{"finishReason": reason})
}
