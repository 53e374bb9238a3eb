package streams

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/genc-murat/crystalstream/internal/core/models"
)

func tokens(args []models.Value) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.Bulk
	}
	return out
}

func TestMaxLenArgs(t *testing.T) {
	tests := []struct {
		name   string
		maxLen MaxLen
		want   []string
	}{
		{"exact", MaxLenExact(100), []string{"MAXLEN", "=", "100"}},
		{"approximate", MaxLenApprox(100), []string{"MAXLEN", "~", "100"}},
		{"exact zero", MaxLenExact(0), []string{"MAXLEN", "=", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokens(tt.maxLen.Args()))
		})
	}
}

func TestClaimOptionsArgs(t *testing.T) {
	t.Run("empty options emit nothing", func(t *testing.T) {
		assert.Empty(t, ClaimOptions{}.Args())
	})

	t.Run("present options in fixed order", func(t *testing.T) {
		opts := ClaimOptions{}.Idle(10).Retry(2).Force()
		assert.Equal(t, []string{"IDLE", "10", "RETRYCOUNT", "2", "FORCE"}, tokens(opts.Args()))
	})

	t.Run("emission order ignores builder call order", func(t *testing.T) {
		opts := ClaimOptions{}.Force().Retry(2).Idle(10)
		assert.Equal(t, []string{"IDLE", "10", "RETRYCOUNT", "2", "FORCE"}, tokens(opts.Args()))
	})

	t.Run("all options", func(t *testing.T) {
		opts := ClaimOptions{}.Idle(10).Time(1700000000000).Retry(3).Force().JustID()
		assert.Equal(t,
			[]string{"IDLE", "10", "TIME", "1700000000000", "RETRYCOUNT", "3", "FORCE", "JUSTID"},
			tokens(opts.Args()))
	})

	t.Run("setters do not mutate the receiver", func(t *testing.T) {
		base := ClaimOptions{}.Idle(10)
		base.Force()
		assert.Equal(t, []string{"IDLE", "10"}, tokens(base.Args()))
	})
}

func TestReadOptionsArgs(t *testing.T) {
	t.Run("empty options emit nothing", func(t *testing.T) {
		assert.Empty(t, ReadOptions{}.Args())
	})

	t.Run("block and count", func(t *testing.T) {
		opts := ReadOptions{}.Block(2000).Count(10)
		assert.Equal(t, []string{"BLOCK", "2000", "COUNT", "10"}, tokens(opts.Args()))
	})

	t.Run("noack without a group is inert", func(t *testing.T) {
		opts := ReadOptions{}.NoAck()
		assert.Empty(t, opts.Args())
		assert.True(t, opts.ReadOnly())
	})

	t.Run("group emits GROUP with both names", func(t *testing.T) {
		opts := ReadOptions{}.Group("group-1", "consumer-1")
		assert.Equal(t, []string{"GROUP", "group-1", "consumer-1"}, tokens(opts.Args()))
		assert.False(t, opts.ReadOnly())
	})

	t.Run("noack precedes GROUP when a group is set", func(t *testing.T) {
		opts := ReadOptions{}.NoAck().Group("group-1", "consumer-1")
		assert.Equal(t, []string{"NOACK", "GROUP", "group-1", "consumer-1"}, tokens(opts.Args()))
	})

	t.Run("full option set keeps grammar order", func(t *testing.T) {
		opts := ReadOptions{}.Group("g", "c").Count(5).NoAck().Block(100)
		assert.Equal(t,
			[]string{"BLOCK", "100", "COUNT", "5", "NOACK", "GROUP", "g", "c"},
			tokens(opts.Args()))
	})
}
