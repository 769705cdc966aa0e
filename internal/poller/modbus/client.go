// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client implements poller.Reader over one Modbus TCP connection.
// It serializes requests because it mutates SlaveId per read and the
// inverter link does not tolerate concurrent in-flight requests.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint    string
	Timeout     time.Duration
	IdleTimeout time.Duration
}

// New creates a connected Modbus TCP client.
// After a transport failure the connection is closed and the handler
// re-dials on the next read.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus client: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	if cfg.IdleTimeout > 0 {
		h.IdleTimeout = cfg.IdleTimeout
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus client: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ReadHoldingRegisters issues FC 3 and returns exactly qty registers.
func (c *Client) ReadHoldingRegisters(unitID uint8, addr, qty uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID

	data, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		re := newReadError(unitID, addr, qty, err)
		if re.Exception == 0 {
			// late or partial frames would poison the next request; re-dial instead
			_ = c.handler.Close()
		}
		return nil, re
	}
	if len(data) != int(qty)*2 {
		return nil, &ReadError{
			UnitID:   unitID,
			Address:  addr,
			Quantity: qty,
			Err:      fmt.Errorf("modbus: expected %d bytes, got %d", int(qty)*2, len(data)),
		}
	}

	return unpackRegisters(data), nil
}

// ReadError is a failed FC 3 request.
type ReadError struct {
	UnitID   uint8
	Address  uint16
	Quantity uint16

	// Exception is the device exception code, 0 if the device did not answer with one.
	Exception byte

	Err error
}

func newReadError(unitID uint8, addr, qty uint16, err error) *ReadError {
	e := &ReadError{UnitID: unitID, Address: addr, Quantity: qty, Err: err}

	var me *modbus.ModbusError
	if errors.As(err, &me) {
		e.Exception = me.ExceptionCode
	}
	return e
}

func (e *ReadError) Error() string {
	if e.Exception != 0 {
		return fmt.Sprintf("modbus exception: unit=%d addr=%#04x qty=%d code=%d", e.UnitID, e.Address, e.Quantity, e.Exception)
	}
	return fmt.Sprintf("modbus read: unit=%d addr=%#04x qty=%d: %v", e.UnitID, e.Address, e.Quantity, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the read failed on a deadline.
func (e *ReadError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// Reason is a short label for logs and metrics: "exception", "timeout" or "transport".
func (e *ReadError) Reason() string {
	switch {
	case e.Exception != 0:
		return "exception"
	case e.Timeout():
		return "timeout"
	default:
		return "transport"
	}
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
