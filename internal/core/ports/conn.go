package ports

import (
	"context"

	"github.com/genc-murat/crystalstream/internal/core/models"
)

// ConnExecutor sends one command (already tokenized into bulk string
// arguments) and returns the raw reply. Implementations own framing,
// pooling and timeouts; callers own encoding and decoding.
type ConnExecutor interface {
	Do(ctx context.Context, args ...models.Value) (models.Value, error)
	Close() error
}
