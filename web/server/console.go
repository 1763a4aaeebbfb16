package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-blockcast/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger for one request: messages go to the server log
// tagged with the request ID and, when a console channel is set, to the client
type WebLogger struct {
	requestID   string
	out         echo.Logger
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for one request; out and consoleChan may be nil
func NewWebLogger(requestID string, out echo.Logger, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		requestID:   requestID,
		out:         out,
		consoleChan: consoleChan,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if wl.out != nil {
		wl.out.Infof("[%s] %s", wl.requestID, strings.TrimRight(message, "\n"))
	}

	// Never block rendering on a slow client
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
		}
	}
}
