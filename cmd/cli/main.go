package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/receiptlab/receipt-designer/internal/preview"
	"github.com/receiptlab/receipt-designer/internal/printer"
	"github.com/receiptlab/receipt-designer/internal/render"
	"github.com/receiptlab/receipt-designer/internal/tui"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

func main() {
	var (
		templatePath string
		dataPath     string
		format       string
		output       string
		printDest    string
		design       bool
	)

	flag.StringVar(&templatePath, "template", "", "Template file (JSON); default template when omitted")
	flag.StringVar(&dataPath, "data", "", "Receipt data file (JSON); sample data when omitted")
	flag.StringVar(&format, "format", "escpos", "Output format: escpos, html or png")
	flag.StringVar(&output, "o", "", "Output file; stdout when omitted")
	flag.StringVar(&printDest, "print", "", "Send to a printer: serial:/dev/ttyUSB0[@baud], net:host:port or usb:vid:pid")
	flag.BoolVar(&design, "design", false, "Open the interactive designer")
	flag.Usage = printUsage
	flag.Parse()

	t, err := loadTemplate(templatePath)
	if err != nil {
		fatal(err)
	}

	data := receipt.SamplePreviewData()
	if dataPath != "" {
		raw, err := os.ReadFile(dataPath)
		if err != nil {
			fatal(fmt.Errorf("failed to read data: %w", err))
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			fatal(fmt.Errorf("invalid data file: %w", err))
		}
	}

	if design {
		savePath := templatePath
		if savePath == "" {
			savePath = "template.json"
		}
		if err := tui.NewApp(*t, data, savePath).Run(); err != nil {
			fatal(err)
		}
		return
	}

	if printDest != "" {
		if err := sendToPrinter(t, data, printDest); err != nil {
			fatal(err)
		}
		return
	}

	if err := receipt.Validate(t); err != nil {
		fatal(fmt.Errorf("invalid template: %w", err))
	}

	switch format {
	case "escpos":
		payload := printer.NewGenerator().Generate(*t, data)
		if output == "" {
			output = printer.DefaultDownloadName()
		}
		name, err := printer.Download(output, payload)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %d bytes to %s\n", len(payload), name)

	case "html":
		doc := render.HTML(*t, data)
		if err := writeOut(output, []byte(doc)); err != nil {
			fatal(err)
		}

	case "png":
		img := preview.New(t.Style.Styles.ReceiptWidth).Render(*t, data)
		if output == "" {
			output = "receipt.png"
		}
		f, err := os.Create(output)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			fatal(err)
		}
		fmt.Println("wrote", output)

	default:
		fatal(fmt.Errorf("unknown format: %s (escpos, html, png)", format))
	}
}

func loadTemplate(path string) (*receipt.Template, error) {
	if path == "" {
		t := receipt.DefaultTemplate()
		return &t, nil
	}
	t, err := receipt.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return t, nil
}

// sendToPrinter generates the command stream and writes it straight
// to the destination, bypassing the server's queue.
func sendToPrinter(t *receipt.Template, data receipt.PreviewData, destSpec string) error {
	if err := receipt.Validate(t); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	dest, err := parseDestination(destSpec)
	if err != nil {
		return err
	}

	payload := printer.NewGenerator().Generate(*t, data)

	pool := printer.NewConnectionPool()
	defer pool.DisconnectAll()

	if err := pool.Print(dest, payload); err != nil {
		return fmt.Errorf("print failed: %w", err)
	}

	fmt.Printf("sent %d bytes to %s\n", len(payload), dest.Key())
	return nil
}

// parseDestination parses serial:/dev/ttyUSB0[@baud], net:host:port
// and usb:vid:pid specs.
func parseDestination(spec string) (printer.Destination, error) {
	scheme, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return printer.Destination{}, fmt.Errorf("invalid printer spec: %s", spec)
	}

	switch scheme {
	case "serial":
		dest := printer.Destination{Type: printer.DestinationSerial, Device: rest}
		if device, baud, ok := strings.Cut(rest, "@"); ok {
			b, err := strconv.Atoi(baud)
			if err != nil {
				return printer.Destination{}, fmt.Errorf("invalid baud rate: %s", baud)
			}
			dest.Device = device
			dest.Baud = b
		}
		return dest, nil

	case "net":
		host, portStr, err := net.SplitHostPort(rest)
		if err != nil {
			return printer.Destination{}, fmt.Errorf("invalid network printer: %s", rest)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return printer.Destination{}, fmt.Errorf("invalid port: %s", portStr)
		}
		return printer.Destination{Type: printer.DestinationNetwork, Host: host, Port: port}, nil

	case "usb":
		vidStr, pidStr, ok := strings.Cut(rest, ":")
		if !ok {
			return printer.Destination{}, fmt.Errorf("usb spec must be usb:vid:pid, got %s", spec)
		}
		vid, err := strconv.ParseUint(vidStr, 16, 16)
		if err != nil {
			return printer.Destination{}, fmt.Errorf("invalid vendor id: %s", vidStr)
		}
		pid, err := strconv.ParseUint(pidStr, 16, 16)
		if err != nil {
			return printer.Destination{}, fmt.Errorf("invalid product id: %s", pidStr)
		}
		return printer.Destination{Type: printer.DestinationUSB, VID: uint16(vid), PID: uint16(pid)}, nil
	}

	return printer.Destination{}, fmt.Errorf("unknown printer scheme: %s", scheme)
}

func writeOut(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Receipt Designer CLI

Usage:
  receipt-cli [flags]

Flags:
  -template <path>   Template file (JSON); the default template when omitted
  -data <path>       Receipt data file (JSON); sample data when omitted
  -format <fmt>      Output format: escpos (default), html or png
  -o <path>          Output file; escpos defaults to receipt-<ts>.prn
  -print <dest>      Send the command stream to a printer instead of a file
  -design            Open the interactive designer

Printer destinations:
  serial:/dev/ttyUSB0        Serial at the default 9600 baud
  serial:/dev/ttyUSB0@19200  Serial at a custom baud rate
  net:192.168.1.50:9100      Network printer
  usb:04b8:0202              USB printer by vendor:product id (hex)

Examples:
  receipt-cli -format html -o receipt.html
  receipt-cli -template shop.json -data order.json -o order.prn
  receipt-cli -template shop.json -print net:192.168.1.50:9100
  receipt-cli -template shop.json -design
`)
}
