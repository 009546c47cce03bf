package model

import "time"

// Message is a single chat turn, either from the user or the assistant.
type Message struct {
	Timestamp time.Time          `json:"timestamp"`
	Data      map[string]float64 `json:"data,omitempty"`
	ID        string             `json:"id"`
	Text      string             `json:"text"`
	IsBot     bool               `json:"isBot"`
}

// SessionKey identifies a cached conversation.
type SessionKey struct {
	UserID    string
	SessionID string
}

// String renders the key in the form used for storage lookups.
func (k SessionKey) String() string {
	if k.SessionID == "" {
		return k.UserID
	}
	return k.UserID + ":" + k.SessionID
}

// StoredSession is the serialized form owned by the memory cache. The
// durable store only ever sees the encoded bytes of this structure.
type StoredSession struct {
	Messages             []Message `json:"messages"`
	OriginalMessageCount int       `json:"originalMessageCount"`
	IsOptimized          bool      `json:"isOptimized"`
}

// MessagePage is one page of a session's message history.
type MessagePage struct {
	Messages   []Message
	TotalCount int
	HasMore    bool
	Degraded   bool
}

// MemoryStats summarizes the in-process cache for diagnostics.
type MemoryStats struct {
	CachedSessions int
	TotalMessages  int
	EstimatedBytes int64
	Evictions      int64
}
