package interview

// CandidateRequest is the intake form of a candidate
type CandidateRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=255"`
	Email      string   `json:"email" validate:"required,email"`
	Experience string   `json:"experience,omitempty" validate:"max=5000"`
	Skills     []string `json:"skills,omitempty" validate:"omitempty,max=50,dive,required,max=100"`
}

// QuestionRequest is one question supplied with the start request
type QuestionRequest struct {
	ID              string `json:"id,omitempty" validate:"omitempty,max=100"`
	Category        string `json:"category" validate:"required"`
	Text            string `json:"text" validate:"required,max=2000"`
	ReferenceAnswer string `json:"reference_answer" validate:"required,max=5000"`
}

// StartInterviewRequest represents the request to start an interview
type StartInterviewRequest struct {
	Candidate CandidateRequest `json:"candidate" validate:"required"`
	// Questions replaces the configured question bank when present
	Questions []QuestionRequest `json:"questions,omitempty" validate:"omitempty,max=200,dive"`
}

// SubmitAnswerRequest represents a candidate answer. An empty answer is
// rejected by the interview itself, not by request validation.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"max=10000"`
}
