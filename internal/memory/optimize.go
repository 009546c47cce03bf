package memory

import (
	"sort"

	"github.com/montlabs/mont-core/internal/model"
)

// maxDataFields bounds the numeric payload carried by an optimized
// message. Amount and confidence are the salient fields; anything else is
// dropped.
const maxDataFields = 2

// optimizeMessages strips heavy per-message payloads down to the fields
// the chat actually needs: id, text, bot flag, timestamp, and at most two
// numeric data fields. The durable copy keeps the full payloads.
func optimizeMessages(msgs []model.Message) []model.Message {
	out := make([]model.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, model.Message{
			ID:        m.ID,
			Text:      m.Text,
			IsBot:     m.IsBot,
			Timestamp: m.Timestamp,
			Data:      compressData(m.Data),
		})
	}
	return out
}

// compressData keeps at most two numeric fields, preferring amount and
// confidence, then lexicographic order for determinism.
func compressData(data map[string]float64) map[string]float64 {
	if len(data) == 0 {
		return nil
	}

	out := make(map[string]float64, maxDataFields)
	for _, preferred := range []string{"amount", "confidence"} {
		if v, ok := data[preferred]; ok {
			out[preferred] = v
		}
	}
	if len(out) < maxDataFields {
		keys := make([]string, 0, len(data))
		for k := range data {
			if _, taken := out[k]; !taken {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			if len(out) >= maxDataFields {
				break
			}
			out[k] = data[k]
		}
	}
	return out
}

// estimateSize approximates the in-memory footprint of a message slice.
// It only needs to be stable, not exact; the pressure sweep compares it
// against a coarse byte budget.
func estimateSize(msgs []model.Message) int64 {
	const perMessageOverhead = 96
	var total int64
	for _, m := range msgs {
		total += int64(len(m.Text)) + int64(len(m.ID)) + perMessageOverhead
		total += int64(len(m.Data)) * 24
	}
	return total
}
