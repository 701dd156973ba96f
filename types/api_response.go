package types

// APIResponse is the unified response envelope for all endpoints.
// Success responses carry Data (and optionally Message); failure
// responses carry Message only, never Data.
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// SuccessResponse builds a success envelope around data.
func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// SuccessMessageResponse builds a success envelope with both a message and data.
func SuccessMessageResponse(message string, data interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// FailureResponse builds a failure envelope carrying only a message.
func FailureResponse(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
