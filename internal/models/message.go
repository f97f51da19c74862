package models

import "time"

type Message struct {
	ID             string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Sender         string    `json:"sender"`
	Text           string    `json:"text"`
	TokenCount     int       `json:"token_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// MessageView is the public-safe projection returned to authenticated
// users: everything else on a message stays server-side.
type MessageView struct {
	MessageID  string    `json:"messageId"`
	Text       string    `json:"text"`
	TokenCount int       `json:"tokenCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (m Message) View() MessageView {
	return MessageView{
		MessageID:  m.ID,
		Text:       m.Text,
		TokenCount: m.TokenCount,
		CreatedAt:  m.CreatedAt,
	}
}
