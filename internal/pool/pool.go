package pool

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

var (
	ErrPoolClosed = errors.New("pool is closed")
	ErrPoolFull   = errors.New("connection pool is full")
)

// ConnectionPool hands out outbound server connections. Connections are
// checked for liveness on the way out and back in; stale ones are
// replaced.
type ConnectionPool struct {
	stats struct {
		sync.RWMutex
		active   int
		idle     int
		waitTime time.Duration
	}
	mu      sync.RWMutex
	config  Config
	factory func() (net.Conn, error)
	conns   chan net.Conn
	closed  bool
}

func NewConnectionPool(config Config, factory func() (net.Conn, error)) (*ConnectionPool, error) {
	if config.InitialSize > config.MaxSize {
		return nil, errors.New("initial size cannot be greater than max size")
	}

	pool := &ConnectionPool{
		config:  config,
		factory: factory,
		conns:   make(chan net.Conn, config.MaxSize),
	}

	for i := 0; i < config.InitialSize; i++ {
		conn, err := pool.factory()
		if err != nil {
			pool.Close()
			return nil, err
		}
		pool.conns <- conn
		pool.incrementActive()
	}

	go pool.cleanIdleConnections()

	return pool, nil
}

// Get returns a live connection, dialing a new one when the pool is
// empty and below its cap.
func (p *ConnectionPool) Get(ctx context.Context) (net.Conn, error) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil, ErrPoolClosed
	}
	p.mu.RUnlock()

	startTime := time.Now()

	select {
	case conn := <-p.conns:
		if !p.isConnAlive(conn) {
			conn.Close()
			return p.createConn()
		}
		p.updateStats(time.Since(startTime))
		return conn, nil

	case <-ctx.Done():
		return nil, ctx.Err()

	default:
		if p.activeCount() >= p.config.MaxSize {
			for i := 0; i < p.config.RetryAttempts; i++ {
				select {
				case conn := <-p.conns:
					p.updateStats(time.Since(startTime))
					return conn, nil
				case <-time.After(p.config.RetryDelay):
					continue
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			return nil, ErrPoolFull
		}

		return p.createConn()
	}
}

// Put returns a connection after use. Dead or surplus connections are
// closed instead of pooled.
func (p *ConnectionPool) Put(conn net.Conn) {
	if conn == nil {
		return
	}

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		conn.Close()
		return
	}
	p.mu.RUnlock()

	if !p.isConnAlive(conn) {
		conn.Close()
		p.decrementActive()
		return
	}

	select {
	case p.conns <- conn:
		p.incrementIdle()
	default:
		conn.Close()
		p.decrementActive()
	}
}

// Discard drops a connection whose protocol state is suspect (for
// example after a mid-reply error) rather than pooling it.
func (p *ConnectionPool) Discard(conn net.Conn) {
	if conn == nil {
		return
	}
	conn.Close()
	p.decrementActive()
}

func (p *ConnectionPool) createConn() (net.Conn, error) {
	conn, err := p.factory()
	if err != nil {
		return nil, err
	}

	p.incrementActive()
	return conn, nil
}

func (p *ConnectionPool) isConnAlive(conn net.Conn) bool {
	if tc, ok := conn.(*net.TCPConn); ok {
		one := make([]byte, 1)
		if err := tc.SetReadDeadline(time.Now()); err != nil {
			return false
		}

		if _, err := tc.Read(one); err != io.EOF {
			// Clear the probe deadline before reuse.
			tc.SetReadDeadline(time.Time{})
			return true
		}
		return false
	}
	// Non-TCP conns (tests use pipes) are assumed alive.
	return true
}

func (p *ConnectionPool) cleanIdleConnections() {
	interval := p.config.IdleTimeout
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		p.mu.RLock()
		if p.closed {
			p.mu.RUnlock()
			return
		}
		p.mu.RUnlock()

		p.cleanPool()
	}
}

func (p *ConnectionPool) cleanPool() {
	for i := len(p.conns); i > 0; i-- {
		select {
		case conn := <-p.conns:
			if conn == nil {
				return
			}
			if !p.isConnAlive(conn) {
				conn.Close()
				p.decrementActive()
				p.decrementIdle()
				continue
			}
			p.conns <- conn
		default:
			return
		}
	}
}

func (p *ConnectionPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	close(p.conns)

	var lastErr error
	for conn := range p.conns {
		if err := conn.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

func (p *ConnectionPool) activeCount() int {
	p.stats.RLock()
	defer p.stats.RUnlock()
	return p.stats.active
}

func (p *ConnectionPool) incrementActive() {
	p.stats.Lock()
	p.stats.active++
	p.stats.Unlock()
}

func (p *ConnectionPool) decrementActive() {
	p.stats.Lock()
	p.stats.active--
	p.stats.Unlock()
}

func (p *ConnectionPool) incrementIdle() {
	p.stats.Lock()
	p.stats.idle++
	p.stats.Unlock()
}

func (p *ConnectionPool) decrementIdle() {
	p.stats.Lock()
	p.stats.idle--
	p.stats.Unlock()
}

func (p *ConnectionPool) updateStats(waitTime time.Duration) {
	p.stats.Lock()
	p.stats.waitTime += waitTime
	p.stats.Unlock()
}

// Stats reports active and idle counts plus the average wait for a
// pooled connection.
func (p *ConnectionPool) Stats() (active, idle int, avgWaitTime time.Duration) {
	p.stats.RLock()
	defer p.stats.RUnlock()

	active = p.stats.active
	idle = p.stats.idle
	if active > 0 {
		avgWaitTime = p.stats.waitTime / time.Duration(active)
	}
	return
}
