package faq

// AskRequest is a candidate question
type AskRequest struct {
	Question string `json:"question" validate:"required,max=1000"`
}

// AnswerResponse is the reply to a candidate question
type AnswerResponse struct {
	Answer          string `json:"answer"`
	Source          string `json:"source"`
	MatchedQuestion string `json:"matched_question,omitempty"`
}
