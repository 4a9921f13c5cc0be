package chat

import "time"

// Wire roles follow the inference provider convention.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one entry in the caller-supplied conversation history.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Message persists individual turns for the transcript collaborator.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
