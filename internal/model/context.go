package model

// RecentMentionCap bounds the per-session mention history.
const RecentMentionCap = 5

// Context is the short-term conversational memory for one session. It is
// owned by the memory cache; the extractor and dispatcher borrow it for a
// single turn and never hold it longer.
type Context struct {
	LastAmount     *float64
	LastIntent     Intent
	LastCategory   Category
	RecentMentions []string
}

// PushMention records a normalized input at the front of the mention
// history, evicting the oldest entry beyond RecentMentionCap. Order is
// most-recent-first.
func (c *Context) PushMention(text string) {
	if text == "" {
		return
	}
	c.RecentMentions = append([]string{text}, c.RecentMentions...)
	if len(c.RecentMentions) > RecentMentionCap {
		c.RecentMentions = c.RecentMentions[:RecentMentionCap]
	}
}

// HasHistory reports whether any prior turn has been observed.
func (c *Context) HasHistory() bool {
	return len(c.RecentMentions) > 0
}
