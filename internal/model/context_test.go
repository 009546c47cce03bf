package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushMentionOrderAndCap(t *testing.T) {
	ctx := &Context{}
	assert.False(t, ctx.HasHistory())

	for i := 1; i <= 7; i++ {
		ctx.PushMention(fmt.Sprintf("turn %d", i))
	}

	assert.True(t, ctx.HasHistory())
	assert.Len(t, ctx.RecentMentions, RecentMentionCap)
	assert.Equal(t, []string{"turn 7", "turn 6", "turn 5", "turn 4", "turn 3"}, ctx.RecentMentions)
}

func TestPushMentionIgnoresEmpty(t *testing.T) {
	ctx := &Context{}
	ctx.PushMention("")
	assert.False(t, ctx.HasHistory())
}
