package entities

import "github.com/google/uuid"

// CandidateProfile is captured at intake and never changes during a session
type CandidateProfile struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name" validate:"required,min=1,max=255"`
	Email      string    `json:"email" validate:"required,email"`
	Experience string    `json:"experience,omitempty" validate:"max=5000"`
	Skills     []string  `json:"skills,omitempty" validate:"dive,required,max=100"`
}
