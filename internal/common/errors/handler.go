// internal/common/errors/handler.go
package errors

// ErrorHandler normalizes pipeline errors at the HTTP boundary
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs the full error server-side and returns the code plus the
// sanitized message callers are allowed to see
func (h *ErrorHandler) Handle(requestID string, err error) (ErrorCode, string) {
	stdErr := h.normalizeError(err)
	h.logError(requestID, stdErr)
	return stdErr.Code, UserMessage(stdErr.Code)
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) logError(requestID string, stdErr *StandardError) {
	fields := map[string]interface{}{
		"requestId":     requestID,
		"errorCode":     string(stdErr.Code),
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"retries":       GetRetryCount(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	if stdErr.Retryable {
		h.logger.Warn(stdErr.Message, fields)
		return
	}
	h.logger.Error(stdErr.Message, fields)
}
