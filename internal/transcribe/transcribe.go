// Package transcribe relays captured audio to an external speech-to-text
// service. It owns no state; it only forwards the payload and hands the
// resulting text back.
package transcribe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"lumo/pkg/apperr"
	"lumo/pkg/logger"
)

// Transcriber submits one audio payload and returns the transcribed text.
// The HTTP handler depends on this, not on a live upstream, so it can be
// tested with a stub.
type Transcriber interface {
	Transcribe(filename string, audio io.Reader) (string, error)
}

// WhisperClient talks to a hosted Whisper inference endpoint. Audio files
// can be large, so the request timeout is generous and no size limit is
// imposed on the payload.
type WhisperClient struct {
	URL    string
	Token  string
	Client *http.Client
}

func NewWhisperClient(url, token string) *WhisperClient {
	return &WhisperClient{
		URL:    url,
		Token:  token,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

type whisperResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

func (c *WhisperClient) Transcribe(filename string, audio io.Reader) (string, error) {
	if c.Token == "" {
		return "", &apperr.UpstreamError{Msg: "server configuration error: missing API token"}
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.URL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		logger.Sugar.Errorf("Transcription request failed: %v", err)
		return "", &apperr.UpstreamError{Msg: fmt.Sprintf("transcription failed: %v", err)}
	}
	defer resp.Body.Close()

	var result whisperResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode < 300 {
		return "", &apperr.UpstreamError{Msg: fmt.Sprintf("transcription service returned an unreadable response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := result.Error
		if msg == "" {
			msg = resp.Status
		}
		return "", &apperr.UpstreamError{
			StatusCode: resp.StatusCode,
			Msg:        "transcription service error: " + msg,
		}
	}

	// An empty transcript is a valid result.
	return result.Text, nil
}
