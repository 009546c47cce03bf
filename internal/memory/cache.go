// Package memory implements the bounded conversation cache that backs the
// assistant's short-term memory. It shadows a durable session store: cold
// loads are optimized and truncated before admission, and three pressure
// mechanisms (capacity, idle TTL, byte budget) keep the cache small.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/montlabs/mont-core/internal/common"
	"github.com/montlabs/mont-core/internal/model"
	"github.com/montlabs/mont-core/internal/service"
)

// Config bounds the cache.
type Config struct {
	MaxSessions      int
	MaxMessages      int
	SessionTTL       time.Duration
	CleanupInterval  time.Duration
	PressureInterval time.Duration
	MemoryLimitBytes int64
}

// DefaultConfig returns the standard bounds.
func DefaultConfig() Config {
	return Config{
		MaxSessions:      10,
		MaxMessages:      50,
		SessionTTL:       35 * time.Minute,
		CleanupInterval:  5 * time.Minute,
		PressureInterval: 30 * time.Second,
		MemoryLimitBytes: 10 * 1024 * 1024,
	}
}

// session is one cached conversation: the truncated message shadow, the
// short-term extraction context, and bookkeeping for eviction.
type session struct {
	lastAccessed  time.Time
	insertedAt    time.Time
	context       *model.Context
	sessionID     string
	messages      []model.Message
	sizeBytes     int64
	originalCount int
	optimized     bool
}

// Cache is the in-process session cache, keyed by the full
// (userID, sessionID) pair so cached entries always line up with the
// durable rows they shadow. Capacity eviction is insertion-order (the
// earliest-admitted session goes first), not LRU; recency only matters
// to the memory-pressure sweep. That mirrors the behavior callers
// already depend on, so it stays until someone decides LRU is an
// intentional improvement.
type Cache struct {
	store     service.SessionStore
	sessions  map[string]*session
	stopCh    chan struct{}
	order     []string
	cfg       Config
	evictions int64
	mu        sync.Mutex
	stopOnce  sync.Once
}

// defaultSessionID names the session used when callers do not supply one.
const defaultSessionID = "main"

// New creates a cache over the given durable store. Call Start to enable
// the background sweeps and Close on shutdown.
func New(store service.SessionStore, cfg Config) *Cache {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 10
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 50
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 35 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.PressureInterval <= 0 {
		cfg.PressureInterval = 30 * time.Second
	}
	if cfg.MemoryLimitBytes <= 0 {
		cfg.MemoryLimitBytes = 10 * 1024 * 1024
	}

	return &Cache{
		cfg:      cfg,
		store:    store,
		sessions: make(map[string]*session),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the idle-cleanup and memory-pressure sweeps.
func (c *Cache) Start() {
	go c.sweepLoop()
}

// Close stops the background sweeps. Safe to call more than once.
func (c *Cache) Close() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// InitializeSession warms the cache for a user's default session, loading
// durable history if present. Storage failure degrades to an empty
// in-memory session.
func (c *Cache) InitializeSession(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.getOrLoad(ctx, defaultKey(userID))
	return err
}

// defaultKey addresses a user's default session.
func defaultKey(userID string) model.SessionKey {
	return model.SessionKey{UserID: userID, SessionID: defaultSessionID}
}

// LoadMessages returns one page of a user's default-session history.
// Pages are 1-based. Storage failures degrade to an empty page with
// Degraded set rather than an error; the chat must stay usable without
// history.
func (c *Cache) LoadMessages(ctx context.Context, userID string, page, limit int) model.MessagePage {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.getOrLoad(ctx, defaultKey(userID))
	if err != nil {
		common.LogError(err, "session load failed, returning empty page",
			common.Fields{"user_id": userID})
		return model.MessagePage{Messages: []model.Message{}, Degraded: true}
	}

	total := len(sess.messages)
	start := (page - 1) * limit
	if start >= total {
		return model.MessagePage{Messages: []model.Message{}, TotalCount: total}
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageMsgs := make([]model.Message, end-start)
	copy(pageMsgs, sess.messages[start:end])

	return model.MessagePage{
		Messages:   pageMsgs,
		TotalCount: total,
		HasMore:    end < total,
	}
}

// AddMessage appends a message to the user's session, trims the in-memory
// shadow to the configured bound, and appends to the durable copy. The
// durable history is never truncated; only the shadow is.
func (c *Cache) AddMessage(ctx context.Context, userID, sessionID string, msg model.Message) {
	if sessionID == "" {
		sessionID = defaultSessionID
	}
	key := model.SessionKey{UserID: userID, SessionID: sessionID}

	c.mu.Lock()
	sess, err := c.getOrLoad(ctx, key)
	if err != nil {
		// Degrade to a purely in-memory session.
		sess = c.admit(key, newSession(sessionID))
	}
	sess.messages = append(sess.messages, msg)
	sess.originalCount++
	if len(sess.messages) > c.cfg.MaxMessages {
		sess.messages = sess.messages[len(sess.messages)-c.cfg.MaxMessages:]
	}
	sess.sizeBytes = estimateSize(sess.messages)
	sess.lastAccessed = time.Now()
	c.mu.Unlock()

	err = common.WithRetry(ctx, func() error {
		if aerr := c.appendToStore(ctx, key, msg); aerr != nil {
			return &common.RetryableError{Err: aerr, Retryable: common.IsRetryable(aerr)}
		}
		return nil
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: 50 * time.Millisecond})
	if err != nil {
		common.LogError(err, "durable append failed, message kept in memory only",
			common.Fields{"user_id": userID, "session_id": sessionID})
	}
}

// GetOptimizedContext returns the most recent messages for prompt or
// display context, newest last. Degrades to empty on storage failure.
func (c *Cache) GetOptimizedContext(ctx context.Context, userID string, limit int) []model.Message {
	if limit <= 0 {
		limit = 10
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.getOrLoad(ctx, defaultKey(userID))
	if err != nil {
		common.LogError(err, "context load failed, returning empty context",
			common.Fields{"user_id": userID})
		return []model.Message{}
	}

	msgs := sess.messages
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	return out
}

// SessionContext returns the session's short-term extraction context,
// creating the session if needed. The pointer is borrowed for one turn;
// the cache remains the owner.
func (c *Cache) SessionContext(ctx context.Context, userID string) *model.Context {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.getOrLoad(ctx, defaultKey(userID))
	if err != nil {
		sess = c.admit(defaultKey(userID), newSession(defaultSessionID))
	}
	return sess.context
}

// Stats reports cache occupancy for diagnostics.
func (c *Cache) Stats() model.MemoryStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := model.MemoryStats{
		CachedSessions: len(c.sessions),
		Evictions:      c.evictions,
	}
	for _, sess := range c.sessions {
		stats.TotalMessages += len(sess.messages)
		stats.EstimatedBytes += sess.sizeBytes
	}
	return stats
}

// Clear drops every cached session. Durable history is untouched.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions = make(map[string]*session)
	c.order = nil
}

// getOrLoad returns the cached session or loads it from the durable
// store, optimizing and truncating before admission. Cache entries are
// keyed by the full (userID, sessionID) pair, matching the durable rows.
// Caller holds c.mu.
func (c *Cache) getOrLoad(ctx context.Context, key model.SessionKey) (*session, error) {
	if sess, ok := c.sessions[key.String()]; ok {
		sess.lastAccessed = time.Now()
		return sess, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return c.admit(key, newSession(key.SessionID)), nil
		}
		return nil, err
	}

	var stored model.StoredSession
	if err := json.Unmarshal(data, &stored); err != nil {
		common.LogError(err, "corrupt stored session, starting fresh",
			common.Fields{"session": key.String()})
		return c.admit(key, newSession(key.SessionID)), nil
	}

	sess := newSession(key.SessionID)
	sess.messages = optimizeMessages(stored.Messages)
	sess.originalCount = len(stored.Messages)
	if stored.OriginalMessageCount > sess.originalCount {
		sess.originalCount = stored.OriginalMessageCount
	}
	if len(sess.messages) > c.cfg.MaxMessages {
		sess.messages = sess.messages[len(sess.messages)-c.cfg.MaxMessages:]
	}
	sess.optimized = true
	sess.sizeBytes = estimateSize(sess.messages)

	return c.admit(key, sess), nil
}

// admit inserts a session, evicting the earliest-inserted entry when the
// cache is full. Caller holds c.mu.
func (c *Cache) admit(key model.SessionKey, sess *session) *session {
	cacheKey := key.String()
	if existing, ok := c.sessions[cacheKey]; ok {
		return existing
	}

	if len(c.sessions) >= c.cfg.MaxSessions && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.sessions, oldest)
		c.evictions++
		common.LogDebug("evicted session at capacity", common.Fields{"session": oldest})
	}

	c.sessions[cacheKey] = sess
	c.order = append(c.order, cacheKey)
	return sess
}

// appendToStore does a read-modify-write append against the durable copy
// so the full history is preserved regardless of the in-memory bound.
func (c *Cache) appendToStore(ctx context.Context, key model.SessionKey, msg model.Message) error {
	var stored model.StoredSession

	data, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		if uerr := json.Unmarshal(data, &stored); uerr != nil {
			stored = model.StoredSession{}
		}
	case isNotFound(err):
		// First message for this session.
	default:
		return err
	}

	stored.Messages = append(stored.Messages, msg)
	stored.OriginalMessageCount = len(stored.Messages)

	encoded, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return c.store.Put(ctx, key, encoded)
}

// sweepLoop runs the idle cleanup and memory-pressure checks until Close.
func (c *Cache) sweepLoop() {
	cleanup := time.NewTicker(c.cfg.CleanupInterval)
	pressure := time.NewTicker(c.cfg.PressureInterval)
	defer cleanup.Stop()
	defer pressure.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-cleanup.C:
			c.evictIdle(time.Now())
		case <-pressure.C:
			c.relievePressure()
		}
	}
}

// evictIdle removes sessions idle longer than the TTL.
func (c *Cache) evictIdle(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keep []string
	for _, cacheKey := range c.order {
		sess, ok := c.sessions[cacheKey]
		if !ok {
			continue
		}
		if now.Sub(sess.lastAccessed) > c.cfg.SessionTTL {
			delete(c.sessions, cacheKey)
			c.evictions++
			common.LogDebug("evicted idle session", common.Fields{"session": cacheKey})
			continue
		}
		keep = append(keep, cacheKey)
	}
	c.order = keep
}

// relievePressure drops all but the most-recently-accessed half of the
// cache once the estimated byte total crosses the limit.
func (c *Cache) relievePressure() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, sess := range c.sessions {
		total += sess.sizeBytes
	}
	if total <= c.cfg.MemoryLimitBytes || len(c.sessions) <= 1 {
		return
	}

	// Sort cached user IDs by recency, newest first.
	ids := make([]string, 0, len(c.sessions))
	for id := range c.sessions {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids)-1; i++ {
		for j := i + 1; j < len(ids); j++ {
			if c.sessions[ids[j]].lastAccessed.After(c.sessions[ids[i]].lastAccessed) {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}

	keepCount := len(ids) / 2
	if keepCount < 1 {
		keepCount = 1
	}
	dropped := ids[keepCount:]
	for _, id := range dropped {
		delete(c.sessions, id)
		c.evictions++
	}

	var keep []string
	for _, id := range c.order {
		if _, ok := c.sessions[id]; ok {
			keep = append(keep, id)
		}
	}
	c.order = keep

	common.LogInfo("memory pressure sweep dropped sessions", common.Fields{
		"dropped":     len(dropped),
		"kept":        keepCount,
		"total_bytes": total,
	})
}

func newSession(sessionID string) *session {
	now := time.Now()
	return &session{
		sessionID:    sessionID,
		context:      &model.Context{},
		lastAccessed: now,
		insertedAt:   now,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
