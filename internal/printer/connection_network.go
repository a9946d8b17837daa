package printer

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// NetworkConnection writes command streams to a raw-TCP printer,
// typically on port 9100.
type NetworkConnection struct {
	conn net.Conn
	mu   sync.Mutex
}

// ConnectNetwork dials a network printer.
func ConnectNetwork(host string, port int) (*NetworkConnection, error) {
	address := fmt.Sprintf("%s:%d", host, port)

	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to network printer: %w", err)
	}

	return &NetworkConnection{
		conn: conn,
	}, nil
}

// Print writes the full command buffer in one shot.
func (c *NetworkConnection) Print(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("failed to write to network printer: %w", err)
	}

	return nil
}

// Close closes the TCP connection.
func (c *NetworkConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn.Close()
	}

	return nil
}
