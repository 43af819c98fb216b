package domain

import "context"

// Inbound is one text message received from the chat transport.
type Inbound struct {
	UpdateID int64
	UserID   int64
	ChatID   int64
	Text     string
}

// Reply is one outbound message. Choices are rendered by the transport, one per row.
type Reply struct {
	Text    string
	Choices []string
	// OneTime hides the choices after one is picked.
	OneTime bool
	// ClearChoices removes a previously shown choice menu.
	ClearChoices bool
}

// Messenger sends replies to a chat.
type Messenger interface {
	Send(ctx context.Context, chatID int64, reply Reply) error
}

// Broadcaster posts text to a broadcast destination such as a channel.
type Broadcaster interface {
	Broadcast(ctx context.Context, destination, text string) error
}
