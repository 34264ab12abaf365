package dto

// ErrorItem is a single client-facing failure message.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the uniform 400-class body: {"errors":[{"msg":...}]}.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// Errors builds an ErrorResponse from plain messages.
func Errors(msgs ...string) ErrorResponse {
	items := make([]ErrorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ErrorItem{Msg: m})
	}
	return ErrorResponse{Errors: items}
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
