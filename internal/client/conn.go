package client

import (
	"context"
	"time"

	"github.com/genc-murat/crystalstream/internal/core/models"
	"github.com/genc-murat/crystalstream/internal/pool"
	"github.com/genc-murat/crystalstream/pkg/resp"
)

// Conn is a pooled RESP command executor. Each Do checks a connection
// out of the pool, writes one command frame, reads one reply, and
// returns the connection. It satisfies ports.ConnExecutor.
type Conn struct {
	pool   *pool.ConnectionPool
	config pool.Config
}

// Dial connects to address with cfg's pool sizing and timeouts.
func Dial(address string, cfg pool.Config) (*Conn, error) {
	factory := pool.NewConnFactory(address, cfg.DialTimeout)
	p, err := pool.NewConnectionPool(cfg, factory.CreateConnection)
	if err != nil {
		return nil, err
	}
	return &Conn{pool: p, config: cfg}, nil
}

func (c *Conn) Do(ctx context.Context, args ...models.Value) (models.Value, error) {
	nc, err := c.pool.Get(ctx)
	if err != nil {
		return models.Value{}, err
	}

	if c.config.WriteTimeout > 0 {
		deadline := time.Now().Add(c.config.WriteTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		if err := nc.SetWriteDeadline(deadline); err != nil {
			c.pool.Discard(nc)
			return models.Value{}, err
		}
	}

	if err := resp.NewWriter(nc).WriteCommand(args...); err != nil {
		c.pool.Discard(nc)
		return models.Value{}, err
	}

	// Blocking reads (XREAD BLOCK) can legitimately out-wait the
	// configured read timeout; the context deadline wins when set.
	if c.config.ReadTimeout > 0 {
		deadline := time.Now().Add(c.config.ReadTimeout)
		if d, ok := ctx.Deadline(); ok {
			deadline = d
		}
		if err := nc.SetReadDeadline(deadline); err != nil {
			c.pool.Discard(nc)
			return models.Value{}, err
		}
	}

	reply, err := resp.NewReader(nc).Read()
	if err != nil {
		c.pool.Discard(nc)
		return models.Value{}, err
	}

	nc.SetReadDeadline(time.Time{})
	nc.SetWriteDeadline(time.Time{})
	c.pool.Put(nc)
	return reply, nil
}

func (c *Conn) Close() error {
	return c.pool.Close()
}

// Stats exposes the underlying pool's counters.
func (c *Conn) Stats() (active, idle int, avgWait time.Duration) {
	return c.pool.Stats()
}
