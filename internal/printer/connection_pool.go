package printer

import (
	"fmt"
	"sync"
)

// Connection is the unified interface for all printer transports.
// Print writes a complete command buffer in one shot; the engine does
// not manage device lifecycle beyond open, write and close.
type Connection interface {
	Print(data []byte) error
	Close() error
}

// Destination types
const (
	DestinationSerial  = "serial"
	DestinationNetwork = "network"
	DestinationUSB     = "usb"
)

// Destination describes where a command stream should be written.
type Destination struct {
	Type   string `json:"type"` // serial, network or usb
	Device string `json:"device,omitempty"`
	Baud   int    `json:"baud,omitempty"`
	Host   string `json:"host,omitempty"`
	Port   int    `json:"port,omitempty"`
	VID    uint16 `json:"vid,omitempty"`
	PID    uint16 `json:"pid,omitempty"`
}

// Key returns a stable identity for the destination, used to reuse
// open connections.
func (d Destination) Key() string {
	switch d.Type {
	case DestinationSerial:
		return fmt.Sprintf("serial:%s", d.Device)
	case DestinationNetwork:
		return fmt.Sprintf("network:%s:%d", d.Host, d.Port)
	case DestinationUSB:
		return fmt.Sprintf("usb:%04X:%04X", d.VID, d.PID)
	default:
		return "unknown:" + d.Type
	}
}

// ConnectionPool caches open connections per destination.
type ConnectionPool struct {
	connections map[string]Connection
	mu          sync.RWMutex
}

// NewConnectionPool creates an empty pool.
func NewConnectionPool() *ConnectionPool {
	return &ConnectionPool{
		connections: make(map[string]Connection),
	}
}

func dial(d Destination) (Connection, error) {
	switch d.Type {
	case DestinationSerial:
		return ConnectSerial(d.Device, d.Baud)
	case DestinationNetwork:
		port := d.Port
		if port == 0 {
			port = 9100
		}
		return ConnectNetwork(d.Host, port)
	case DestinationUSB:
		return ConnectUSB(d.VID, d.PID)
	default:
		return nil, fmt.Errorf("unsupported printer type: %s", d.Type)
	}
}

// Connect ensures a connection to the destination exists.
func (p *ConnectionPool) Connect(d Destination) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.connections[d.Key()]; exists {
		return nil
	}

	conn, err := dial(d)
	if err != nil {
		return err
	}

	p.connections[d.Key()] = conn
	return nil
}

// Print writes the command buffer to the destination, connecting
// first if needed. A failed write evicts the cached connection so the
// next attempt redials.
func (p *ConnectionPool) Print(d Destination, data []byte) error {
	if err := p.Connect(d); err != nil {
		return err
	}

	p.mu.RLock()
	conn := p.connections[d.Key()]
	p.mu.RUnlock()

	if err := conn.Print(data); err != nil {
		p.Disconnect(d)
		return err
	}

	return nil
}

// Disconnect closes and evicts the destination's connection.
func (p *ConnectionPool) Disconnect(d Destination) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn, exists := p.connections[d.Key()]
	if !exists {
		return nil
	}

	err := conn.Close()
	delete(p.connections, d.Key())

	return err
}

// DisconnectAll closes every open connection.
func (p *ConnectionPool) DisconnectAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for key, conn := range p.connections {
		conn.Close()
		delete(p.connections, key)
	}
}

// IsConnected reports whether the destination has an open connection.
func (p *ConnectionPool) IsConnected(d Destination) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, exists := p.connections[d.Key()]
	return exists
}
