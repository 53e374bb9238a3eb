package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamEntryFields(t *testing.T) {
	entry := StreamEntry{
		ID: "1-0",
		Fields: map[string]Value{
			"name":    {Type: "bulk", Bulk: "alerts"},
			"status":  {Type: "string", Str: "active"},
			"payload": {Type: "bulk", Bulk: `{"user":{"id":7,"tags":["a","b"]}}`},
			"count":   {Type: "integer", Num: 3},
		},
	}

	t.Run("field lookup", func(t *testing.T) {
		v, ok := entry.Field("name")
		assert.True(t, ok)
		assert.Equal(t, "alerts", v.Bulk)

		_, ok = entry.Field("missing")
		assert.False(t, ok)
	})

	t.Run("string field", func(t *testing.T) {
		assert.Equal(t, "alerts", entry.StringField("name"))
		assert.Equal(t, "active", entry.StringField("status"))
		assert.Empty(t, entry.StringField("count"))
		assert.Empty(t, entry.StringField("missing"))
	})

	t.Run("json field", func(t *testing.T) {
		assert.Equal(t, int64(7), entry.JSONField("payload", "user.id").Int())
		assert.Equal(t, "b", entry.JSONField("payload", "user.tags.1").String())
		assert.False(t, entry.JSONField("payload", "user.email").Exists())
		assert.False(t, entry.JSONField("missing", "user.id").Exists())
	})

	t.Run("len", func(t *testing.T) {
		assert.Equal(t, 4, entry.Len())
	})
}

func TestStreamKeyJustIDs(t *testing.T) {
	key := StreamKey{
		Key: "s1",
		Entries: []StreamEntry{
			{ID: "1-0"},
			{ID: "2-0"},
		},
	}
	assert.Equal(t, []string{"1-0", "2-0"}, key.JustIDs())

	assert.Empty(t, StreamKey{Key: "s2"}.JustIDs())
}

func TestPendingSummaryEmpty(t *testing.T) {
	assert.True(t, PendingSummary{}.Empty())
	assert.False(t, PendingSummary{Count: 3}.Empty())
}
