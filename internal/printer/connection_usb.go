package printer

import (
	"fmt"
	"sync"

	"github.com/google/gousb"
)

// USBConnection writes command streams to a USB thermal printer
// through its bulk OUT endpoint.
type USBConnection struct {
	ctx      *gousb.Context
	device   *gousb.Device
	iface    *gousb.Interface
	done     func()
	endpoint *gousb.OutEndpoint
	mu       sync.Mutex
}

// ConnectUSB opens the printer with the given vendor/product ID and
// claims its default interface. Fails when libusb is unavailable or
// the device exposes no OUT endpoint.
func ConnectUSB(vid, pid uint16) (*USBConnection, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("failed to open USB device: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("device not found: %04X:%04X", vid, pid)
	}

	iface, done, err := dev.DefaultInterface()
	if err != nil {
		// Some kernels hold the interface with a printer-class
		// driver; detach and retry once.
		dev.SetAutoDetach(true)
		iface, done, err = dev.DefaultInterface()
	}
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("failed to claim USB interface: %w", err)
	}

	var endpoint *gousb.OutEndpoint
	for _, epDesc := range iface.Setting.Endpoints {
		if epDesc.Direction == gousb.EndpointDirectionOut {
			if ep, err := iface.OutEndpoint(epDesc.Number); err == nil {
				endpoint = ep
				break
			}
		}
	}
	if endpoint == nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("no OUT endpoint on device %04X:%04X", vid, pid)
	}

	return &USBConnection{
		ctx:      ctx,
		device:   dev,
		iface:    iface,
		done:     done,
		endpoint: endpoint,
	}, nil
}

// Print writes the full command buffer in one shot.
func (c *USBConnection) Print(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.endpoint.Write(data); err != nil {
		return fmt.Errorf("failed to write to USB printer: %w", err)
	}

	return nil
}

// Close releases the interface, device and USB context.
func (c *USBConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		c.done()
	}
	if c.device != nil {
		c.device.Close()
	}
	if c.ctx != nil {
		return c.ctx.Close()
	}

	return nil
}
