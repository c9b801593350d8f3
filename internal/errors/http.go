package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ClassifyStatus maps HTTP status codes to error categories.
func ClassifyStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408: // Request Timeout
			return Recoverable
		case 429: // Too Many Requests
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// 1xx/3xx reaching this point are unexpected; be conservative.
		return Recoverable
	}
}

// NewAPIError builds the APIError for a failed response whose body was
// already parsed into body ({} when it was not valid JSON).
func NewAPIError(statusCode int, body json.RawMessage) *APIError {
	return &APIError{
		Message:  MessageFromBody(statusCode, body),
		Status:   statusCode,
		Category: ClassifyStatus(statusCode),
	}
}

// NewTransportError wraps a failure that happened before any response arrived.
func NewTransportError(method, url string, err error) *TransportError {
	return &TransportError{Method: method, URL: url, Underlying: err}
}

// MessageFromBody picks the user facing message for a failed response:
// the top-level "error" field, else errores[0].msg, else "Error <status>".
// Empty, null, false and zero values do not count as present. Fields are
// decoded one at a time so a malformed "errores" never hides "error".
func MessageFromBody(statusCode int, body json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		if msg, ok := present(fields["error"]); ok {
			return msg
		}
		if msg, ok := firstErrorMsg(fields["errores"]); ok {
			return msg
		}
	}
	return fmt.Sprintf("Error %d", statusCode)
}

// firstErrorMsg reads errores[0].msg, tolerating any other shape.
func firstErrorMsg(raw json.RawMessage) (string, bool) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil || len(list) == 0 {
		return "", false
	}
	var first map[string]json.RawMessage
	if err := json.Unmarshal(list[0], &first); err != nil {
		return "", false
	}
	return present(first["msg"])
}

// present reports whether v holds a usable value and renders it as text.
func present(v json.RawMessage) (string, bool) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return "", false
	}
	switch string(v) {
	case "null", "false", `""`:
		return "", false
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	}
	if f, err := strconv.ParseFloat(string(v), 64); err == nil && f == 0 {
		return "", false
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, v); err != nil {
		return string(v), true
	}
	return compact.String(), true
}
