// Package notify provides the default alert sink: structured log events.
// Real delivery (push, webhooks) belongs to an external collaborator that
// implements service.Notifier.
package notify

import (
	"context"

	"github.com/montlabs/mont-core/internal/common"
)

// LogNotifier emits alert events as structured log records.
type LogNotifier struct{}

// NewLogNotifier returns a Notifier backed by the process logger.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the event with its category and payload.
func (n *LogNotifier) Notify(_ context.Context, category, message string, payload map[string]any) {
	fields := common.Fields{"category": category}
	for k, v := range payload {
		fields[k] = v
	}
	common.LogInfo(message, fields)
}
