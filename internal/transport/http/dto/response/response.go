package response

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the success envelope of the JSON API.
type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse carries a machine readable code in Error and a human readable Details.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

func ErrorResponseWithDetails(code, details string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Error:   code,
		Details: details,
	}
}
