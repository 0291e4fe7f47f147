package domain

// ChatMessage is a row from the bot message table. Column sets differ across
// deployments, so rows are returned as loosely typed maps.
type ChatMessage map[string]any

// ChatHistoryEntry is a row from public.n8n_chat_histories. Message holds the
// decoded JSON payload when the stored value parses, the raw string otherwise.
type ChatHistoryEntry struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Message   any    `json:"message"`
}

// ChatSession summarizes one chat session: its latest message and row count.
type ChatSession struct {
	SessionID   string `json:"session_id"`
	LastID      int64  `json:"last_id"`
	LastMessage any    `json:"last_message"`
	Count       int64  `json:"count"`
}
