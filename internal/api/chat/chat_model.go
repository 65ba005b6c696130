package chat

// ChatRequest is the payload of POST /chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatResponse carries the assistant's reply text.
type ChatResponse struct {
	Reply string `json:"reply"`
}
