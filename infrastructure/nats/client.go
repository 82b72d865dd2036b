package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/pinkcat015/todolist/pkg/logger"
)

// Client wraps a core NATS connection. Activity events are fire-and-forget,
// so no JetStream stream is created.
type Client struct {
	conn *nats.Conn
}

type ClientConfig struct {
	URL  string // nats://localhost:4222
	Name string
}

func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS client initialized", "url", nc.ConnectedUrl())
	return &Client{conn: nc}, nil
}

func (c *Client) Conn() *nats.Conn {
	return c.conn
}

// Close drains pending publishes before closing.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
		return err
	}
	logger.Info("NATS connection closed")
	return nil
}
