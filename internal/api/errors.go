package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is a non-success response from the API. The server may include a
// human-readable message in its error envelope; callers that want a
// friendlier fallback check Message before printing.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// ErrorMessage extracts the server-provided message from err, or returns
// the empty string when err is not an API error or carried no message.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// decodeError reads a failed response body and returns an *Error. The
// body is expected to optionally carry {"message": "..."}.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &envelope)
	return &Error{Status: resp.StatusCode, Message: envelope.Message}
}
