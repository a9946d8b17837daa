package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/receiptlab/receipt-designer/internal/printer"
	"github.com/receiptlab/receipt-designer/internal/render"
	"github.com/receiptlab/receipt-designer/pkg/receipt"
)

// WebSocket event types
const (
	EventPreview  = "preview"
	EventPrint    = "print"
	EventResponse = "response"
	EventError    = "error"
)

// WSMessage is one WebSocket frame in either direction.
type WSMessage struct {
	Event string                 `json:"event"`
	Data  map[string]any `json:"data"`
}

// WSClient is one connected designer session. The preview event lets
// an editor stream template changes and get rendered HTML back
// without re-posting the full document over HTTP every keystroke.
type WSClient struct {
	conn   *websocket.Conn
	send   chan WSMessage
	server *Server
	mu     sync.Mutex
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &WSClient{
		conn:   conn,
		send:   make(chan WSMessage, 256),
		server: s,
	}

	s.logger.Info("websocket client connected")

	go client.readPump()
	go client.writePump()
}

func (c *WSClient) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
		c.server.logger.Info("websocket client disconnected")
	}()

	for {
		var msg WSMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.server.logger.Warn("websocket error", zap.Error(err))
			}
			break
		}

		c.handleMessage(&msg)
	}
}

func (c *WSClient) writePump() {
	// Closing the connection here tears down the read pump too: a dead
	// writer must not leave the reader filling the send buffer forever.
	defer c.conn.Close()

	for msg := range c.send {
		c.mu.Lock()
		err := c.conn.WriteJSON(msg)
		c.mu.Unlock()

		if err != nil {
			c.server.logger.Warn("websocket write error", zap.Error(err))
			return
		}
	}
}

func (c *WSClient) handleMessage(msg *WSMessage) {
	switch msg.Event {
	case EventPreview:
		c.handlePreviewEvent(msg.Data)
	case EventPrint:
		c.handlePrintEvent(msg.Data)
	default:
		c.sendError(fmt.Sprintf("unknown event: %s", msg.Event))
	}
}

// decodeTemplateAndData pulls the template and optional preview data
// out of a message payload.
func decodeTemplateAndData(data map[string]any) (*receipt.Template, receipt.PreviewData, error) {
	rawTemplate, ok := data["template"]
	if !ok {
		return nil, receipt.PreviewData{}, fmt.Errorf("template is required")
	}

	templateBytes, err := json.Marshal(rawTemplate)
	if err != nil {
		return nil, receipt.PreviewData{}, fmt.Errorf("invalid template: %w", err)
	}

	t, err := receipt.Parse(templateBytes)
	if err != nil {
		return nil, receipt.PreviewData{}, err
	}

	previewData := receipt.SamplePreviewData()
	if rawData, ok := data["data"]; ok {
		dataBytes, err := json.Marshal(rawData)
		if err == nil {
			var pd receipt.PreviewData
			if json.Unmarshal(dataBytes, &pd) == nil {
				previewData = pd
			}
		}
	}

	return t, previewData, nil
}

func (c *WSClient) handlePreviewEvent(data map[string]any) {
	t, previewData, err := decodeTemplateAndData(data)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	doc := render.HTML(*t, previewData)

	c.sendResponse(map[string]any{
		"html": doc,
	})
}

func (c *WSClient) handlePrintEvent(data map[string]any) {
	t, previewData, err := decodeTemplateAndData(data)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	rawPrinter, ok := data["printer"]
	if !ok {
		c.sendError("printer is required")
		return
	}

	printerBytes, err := json.Marshal(rawPrinter)
	if err != nil {
		c.sendError(fmt.Sprintf("invalid printer: %v", err))
		return
	}

	var dest printer.Destination
	if err := json.Unmarshal(printerBytes, &dest); err != nil {
		c.sendError(fmt.Sprintf("invalid printer: %v", err))
		return
	}

	if err := receipt.Validate(t); err != nil {
		c.sendError(fmt.Sprintf("invalid template: %v", err))
		return
	}

	payload := printer.NewGenerator().Generate(*t, previewData)
	jobID := c.server.queue.Enqueue(dest, payload)

	c.sendResponse(map[string]any{
		"success": true,
		"job_id":  jobID,
	})
}

func (c *WSClient) sendResponse(data map[string]any) {
	c.send <- WSMessage{
		Event: EventResponse,
		Data:  data,
	}
}

func (c *WSClient) sendError(message string) {
	c.send <- WSMessage{
		Event: EventError,
		Data: map[string]any{
			"error": message,
		},
	}
}
