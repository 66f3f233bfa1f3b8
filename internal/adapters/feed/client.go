// Package feed connects a live market data provider to an upstream websocket
// feed. Control frames are JSON; subscription state is tracked so a reconnect
// replays every desired subscription.
package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.trai.ch/zerr"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

const dialTimeout = 10 * time.Second

// Client implements ports.FeedClient over one websocket connection. Run owns
// the connection lifecycle: it dials, replays desired subscriptions, pumps the
// read loop and reconnects with backoff until the context ends or Close is
// called.
type Client struct {
	url     string
	backoff backoff
	log     ports.Logger
	dialer  *websocket.Dialer

	mu       sync.Mutex
	conn     *websocket.Conn
	listener ports.FeedListener
	desired  map[domain.ExternalID]struct{}
	closed   bool
	done     chan struct{}
}

var _ ports.FeedClient = (*Client)(nil)

// NewClient creates a client for the given feed settings. Run must be called
// before any subscription reaches the upstream.
func NewClient(settings domain.FeedSettings, log ports.Logger) *Client {
	return &Client{
		url:     settings.URL,
		backoff: newBackoff(settings.ReconnectMin, settings.ReconnectMax),
		log:     log,
		dialer:  &websocket.Dialer{HandshakeTimeout: dialTimeout},
		desired: make(map[domain.ExternalID]struct{}),
		done:    make(chan struct{}),
	}
}

// SetListener installs the event listener.
func (c *Client) SetListener(l ports.FeedListener) {
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

// Run drives the connection until the context ends or the client is closed.
func (c *Client) Run(ctx context.Context) error {
	attempt := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		default:
		}

		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			attempt++
			c.log.Warn("feed dial failed", "url", c.url, "attempt", attempt, "error", err)
			if err := c.sleep(ctx, c.backoff.next(attempt)); err != nil {
				return err
			}
			continue
		}
		attempt = 0
		c.log.Info("feed connected", "url", c.url)

		if err := c.attach(conn); err != nil {
			conn.Close()
			// Close racing the dial is a clean shutdown, not a failure.
			if errors.Is(err, domain.ErrWorkerTerminated) {
				return nil
			}
			return err
		}
		err = c.readLoop(conn)
		c.detach(conn)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		default:
		}
		c.log.Warn("feed disconnected", "error", err)
	}
}

// attach installs the connection and replays every desired subscription.
func (c *Client) attach(conn *websocket.Conn) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrWorkerTerminated
	}
	c.conn = conn
	if len(c.desired) == 0 {
		return nil
	}
	ids := make([]domain.ExternalID, 0, len(c.desired))
	for id := range c.desired {
		ids = append(ids, id)
	}
	if err := conn.WriteJSON(controlMessage{Op: opSubscribe, IDs: encodeIDs(ids)}); err != nil {
		return zerr.Wrap(err, "replaying subscriptions")
	}
	return nil
}

func (c *Client) detach(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
	conn.Close()
}

func (c *Client) readLoop(conn *websocket.Conn) error {
	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return err
		}

		c.mu.Lock()
		listener := c.listener
		c.mu.Unlock()
		if listener == nil {
			continue
		}

		switch msg.Type {
		case msgResult:
			results := make([]ports.FeedResult, len(msg.Results))
			for i, r := range msg.Results {
				results[i] = r.toFeedResult()
			}
			listener.SubscriptionResults(results)
		case msgTick:
			listener.ValueUpdate(domain.ParseExternalID(msg.ID), msg.Fields)
		default:
			c.log.Debug("unknown feed message", "type", msg.Type)
		}
	}
}

// Subscribe records the identifiers as desired and requests them upstream.
// While disconnected the request is deferred to the next reconnect replay.
func (c *Client) Subscribe(_ context.Context, ids []domain.ExternalID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrWorkerTerminated
	}
	for _, id := range ids {
		c.desired[id] = struct{}{}
	}
	if c.conn == nil {
		return nil
	}
	if err := c.conn.WriteJSON(controlMessage{Op: opSubscribe, IDs: encodeIDs(ids)}); err != nil {
		return zerr.Wrap(err, "subscribing feed")
	}
	return nil
}

// Unsubscribe drops the identifiers from the desired set and releases them
// upstream when connected.
func (c *Client) Unsubscribe(_ context.Context, ids []domain.ExternalID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		delete(c.desired, id)
	}
	if c.closed || c.conn == nil {
		return nil
	}
	if err := c.conn.WriteJSON(controlMessage{Op: opUnsubscribe, IDs: encodeIDs(ids)}); err != nil {
		return zerr.Wrap(err, "unsubscribing feed")
	}
	return nil
}

// Close tears down the connection and stops Run.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	return nil
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return nil
	case <-t.C:
		return nil
	}
}
