// internal/publisher/mqtt/client.go
package mqtt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Config describes one broker connection.
type Config struct {
	Broker   string // tcp://host:1883
	ClientID string
	Username string
	Password string

	// WillTopic receives a retained "offline" from the broker when the
	// connection drops. Empty disables the last will.
	WillTopic string

	ConnectTimeout time.Duration
	PublishTimeout time.Duration
}

// Client is a paho-backed publisher.
//
// The last retained payload sent to WillTopic is replayed after every
// reconnect, since the broker will have replaced it with the will.
type Client struct {
	cfg    Config
	client paho.Client

	mu        sync.Mutex
	willState []byte
}

func init() {
	paho.ERROR = pahoLogger{level: log.ErrorLevel}
	paho.CRITICAL = pahoLogger{level: log.ErrorLevel}
	paho.WARN = pahoLogger{level: log.WarnLevel}
}

// New connects to the broker. AutoReconnect keeps the session alive
// afterwards.
func New(cfg Config) (*Client, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt: broker is required")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}

	c := &Client{cfg: cfg}

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetKeepAlive(30 * time.Second)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)
	if cfg.WillTopic != "" {
		opts.SetWill(cfg.WillTopic, "offline", 1, true)
	}
	opts.SetOnConnectHandler(c.onConnect)
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.WithError(err).Warn("mqtt connection lost")
	})

	c.client = paho.NewClient(opts)

	token := c.client.Connect()
	if !token.WaitTimeout(cfg.ConnectTimeout) {
		return nil, fmt.Errorf("mqtt: connect to %s timed out after %s", cfg.Broker, cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt: connect to %s: %w", cfg.Broker, err)
	}

	return c, nil
}

// Publish sends payload and waits for the broker's acknowledgement
// (QoS 1/2) or for the write to complete (QoS 0).
func (c *Client) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(c.cfg.PublishTimeout) {
		return fmt.Errorf("mqtt: publish to %s timed out after %s", topic, c.cfg.PublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish to %s: %w", topic, err)
	}

	if retained && topic == c.cfg.WillTopic {
		c.mu.Lock()
		c.willState = append(c.willState[:0], payload...)
		c.mu.Unlock()
	}
	return nil
}

// Close disconnects, giving in-flight messages a moment to drain.
func (c *Client) Close() error {
	c.client.Disconnect(250)
	return nil
}

func (c *Client) onConnect(pc paho.Client) {
	log.WithField("broker", c.cfg.Broker).Info("mqtt connected")

	c.mu.Lock()
	state := append([]byte(nil), c.willState...)
	c.mu.Unlock()

	if c.cfg.WillTopic == "" || len(state) == 0 {
		return
	}

	// the handler runs on paho's connection goroutine; never block it
	go func() {
		token := pc.Publish(c.cfg.WillTopic, 1, true, state)
		if !token.WaitTimeout(c.cfg.PublishTimeout) {
			log.WithField("topic", c.cfg.WillTopic).Warn("mqtt availability replay timed out")
			return
		}
		if err := token.Error(); err != nil {
			log.WithError(err).WithField("topic", c.cfg.WillTopic).Warn("mqtt availability replay failed")
		}
	}()
}

// pahoLogger routes paho's internal loggers into logrus.
type pahoLogger struct {
	level log.Level
}

func (l pahoLogger) Println(v ...interface{}) {
	log.WithField("component", "paho").Logln(l.level, v...)
}

func (l pahoLogger) Printf(format string, v ...interface{}) {
	log.WithField("component", "paho").Logf(l.level, format, v...)
}
