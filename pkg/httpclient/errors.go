package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
)

// backendErrorBody covers the error shapes the storefront backend answers with:
// {"error":{"code","message"}}, {"error":"..."} and {"message":"..."}.
type backendErrorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type structuredError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResponseError reads a non-2xx response and translates it into an AppError
// when the status maps to one. The body is consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	code, message, ok := decodeBackendError(bodyBytes)
	if !ok {
		if resp.StatusCode == http.StatusUnauthorized {
			return apperrors.Unauthorized(operation + ": please log in")
		}
		return fmt.Errorf("%s returned status %d: %s", operation, resp.StatusCode, string(bodyBytes))
	}
	return mapBackendError(resp.StatusCode, code, message, operation)
}

func decodeBackendError(body []byte) (code, message string, ok bool) {
	var envelope backendErrorBody
	if json.Unmarshal(body, &envelope) != nil {
		return "", "", false
	}
	if len(envelope.Error) > 0 && string(envelope.Error) != "null" {
		var se structuredError
		if json.Unmarshal(envelope.Error, &se) == nil && se.Message != "" {
			return se.Code, se.Message, true
		}
		var plain string
		if json.Unmarshal(envelope.Error, &plain) == nil && plain != "" {
			return "", plain, true
		}
	}
	if envelope.Message != "" {
		return "", envelope.Message, true
	}
	return "", "", false
}

func mapBackendError(status int, code, message, operation string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", operation, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(operation, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualifiedMsg)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualifiedMsg)
	case status == http.StatusGone:
		return apperrors.Gone(qualifiedMsg)
	case status == http.StatusUnprocessableEntity:
		return apperrors.PaymentFailed(qualifiedMsg)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(qualifiedMsg)
	case status >= 500:
		return fmt.Errorf("%s server error (%d/%s): %s", operation, status, code, message)
	default:
		if code == "" {
			code = http.StatusText(status)
		}
		return &apperrors.AppError{
			Code:    code,
			Message: qualifiedMsg,
			Status:  status,
		}
	}
}

// DecodeJSON decodes a 2xx response body into dst (skipped when dst is nil) and
// turns any other status into an error via ParseResponseError. The body is closed.
func DecodeJSON(resp *http.Response, dst any, operation string) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ParseResponseError(resp, operation)
	}
	defer func() { _ = resp.Body.Close() }()
	if dst == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
