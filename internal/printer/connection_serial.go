package printer

import (
	"fmt"
	"sync"

	"github.com/tarm/serial"
)

// SerialConnection writes command streams to a serial thermal printer.
type SerialConnection struct {
	port *serial.Port
	mu   sync.Mutex
}

// ConnectSerial opens a serial port. A zero baud rate defaults to
// 9600, the common speed for thermal printers.
func ConnectSerial(device string, baud int) (*SerialConnection, error) {
	if baud == 0 {
		baud = 9600
	}

	config := &serial.Config{
		Name: device,
		Baud: baud,
	}

	port, err := serial.OpenPort(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}

	return &SerialConnection{
		port: port,
	}, nil
}

// Print writes the full command buffer in one shot.
func (c *SerialConnection) Print(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.port.Write(data); err != nil {
		return fmt.Errorf("failed to write to serial printer: %w", err)
	}

	return nil
}

// Close closes the serial port.
func (c *SerialConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.port != nil {
		return c.port.Close()
	}

	return nil
}
