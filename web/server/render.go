package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-blockcast/pkg/renderer"
)

// TileUpdate represents a single finished tile sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Completion order (1-based)
	TotalTiles int    `json:"totalTiles"` // Total number of tiles in the image
}

// SSEEvent represents one event queued for the single SSE writer
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders one frame and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid request: "+err.Error()))
	}

	logger := NewWebLogger(requestID(c), c.Logger(), nil)
	sceneObj, err := s.setupScene(req, logger)
	if err != nil {
		return sceneError(c, err)
	}

	fb := renderer.NewFramebuffer(req.Width, req.Height)
	stats, err := s.newRaytracer(sceneObj, logger).RenderParallel(c.Request().Context(), fb)
	if err != nil {
		return fmt.Errorf("render %s: %w", req.Scene, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.Image()); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}

	header := c.Response().Header()
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleRenderStream renders tiles in parallel and streams each finished tile via SSE,
// followed by a "complete" event with the frame statistics
func (s *Server) handleRenderStream(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Invalid request: "+err.Error()))
	}

	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(requestID(c), c.Logger(), consoleChan)
	sceneObj, err := s.setupScene(req, logger)
	if err != nil {
		return sceneError(c, err)
	}

	ctx := c.Request().Context()
	w := c.Response()
	setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	// Single writer goroutine; everything else sends events to it
	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeSSEEvents(w, events)
	}()

	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		streamConsoleMessages(ctx, consoleChan, events)
	}()

	fb := renderer.NewFramebuffer(req.Width, req.Height)
	totalTiles := len(renderer.NewTileGrid(req.Width, req.Height, s.cfg.Render.TileSize))
	var completed atomic.Int32

	stats, renderErr := s.newRaytracer(sceneObj, logger).RenderTiles(ctx, fb, func(tile renderer.Tile) {
		update, err := newTileUpdate(fb, tile, int(completed.Add(1)), totalTiles)
		if err != nil {
			logger.Printf("tile %d: %v\n", tile.ID, err)
			return
		}
		sendEvent(ctx, events, "tile", update)
	})

	// The logger is not used past this point
	close(consoleChan)
	<-consoleDone

	if renderErr != nil {
		sendEvent(ctx, events, "error", errorBody(renderErr.Error()))
	} else {
		sendEvent(ctx, events, "complete", newStats(stats))
	}
	close(events)
	<-writerDone
	return nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSEEvents writes events until the channel closes. After a failed write the
// client is gone, so remaining events are drained without writing.
func writeSSEEvents(w http.ResponseWriter, events <-chan SSEEvent) {
	failed := false
	for event := range events {
		if failed {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			failed = true
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards logger output to the client until consoleChan closes
func streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		sendEvent(ctx, events, "console", msg)
	}
}

// sendEvent queues a JSON event, giving up when the client disconnects
func sendEvent(ctx context.Context, events chan<- SSEEvent, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(strconv.Quote(err.Error()))
	}
	select {
	case events <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// newTileUpdate encodes one finished tile
func newTileUpdate(fb *renderer.Framebuffer, tile renderer.Tile, tileNumber, totalTiles int) (TileUpdate, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, fb.TileImage(tile.Bounds)); err != nil {
		return TileUpdate{}, err
	}
	return TileUpdate{
		TileX:      tile.Bounds.Min.X,
		TileY:      tile.Bounds.Min.Y,
		Width:      tile.Bounds.Dx(),
		Height:     tile.Bounds.Dy(),
		ImageData:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		TileNumber: tileNumber,
		TotalTiles: totalTiles,
	}, nil
}
