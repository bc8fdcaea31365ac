package chat

type CreateChatRequest struct {
	Title string `json:"title" validate:"required,min=2,max=200"`
}

type AskRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

type AskResponse struct {
	Question *Message `json:"question"`
	Answer   *Message `json:"answer"`
}
