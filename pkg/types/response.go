package types

// SuccessEnvelope is the wrapper every successful response ships in.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope mirrors SuccessEnvelope for failures, adding the machine
// readable code and optional per-field details.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// NewSuccess builds the standard success wrapper.
func NewSuccess(message string, data any) SuccessEnvelope {
	return SuccessEnvelope{Success: true, Message: message, Data: data}
}

// NewError builds the standard failure wrapper.
func NewError(code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{Success: false, Message: message, Code: code, Details: details}
}
