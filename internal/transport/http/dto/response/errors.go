package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  StatusError,
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: StatusError,
		Error:  "authentication_failed",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Status:  StatusError,
		Error:   "authentication_required",
		Details: "Login required",
	}

	ErrForbidden = ErrorResponse{
		Status:  StatusError,
		Error:   "forbidden",
		Details: "You are not allowed to edit this post",
	}

	ErrPostNotFound = ErrorResponse{
		Status:  StatusError,
		Error:   "post_not_found",
		Details: "Post not found",
	}

	ErrDraftNotFound = ErrorResponse{
		Status:  StatusError,
		Error:   "draft_not_found",
		Details: "Editor draft expired or does not exist",
	}

	ErrInternal = ErrorResponse{
		Status:  StatusError,
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
