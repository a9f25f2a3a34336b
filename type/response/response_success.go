package response

type SuccessResponse struct {
	Success bool    `json:"success"`
	Message *string `json:"message,omitempty"`
	Data    any     `json:"data,omitempty"`
}

func Success(msg any, data ...any) *SuccessResponse {
	if message, ok := msg.(string); ok {
		response := &SuccessResponse{
			Success: true,
			Message: &message,
		}
		if len(data) > 0 {
			response.Data = data[0]
		}
		return response
	}

	// msg is the data itself
	return &SuccessResponse{
		Success: true,
		Data:    msg,
	}
}
