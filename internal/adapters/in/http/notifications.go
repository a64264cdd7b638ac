package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const heartbeatInterval = 15 * time.Second

// StreamNotifications handles GET /api/v1/notifications/{channel} as a server-sent
// event stream. The stream ends when the client disconnects.
func (s *Server) StreamNotifications(ctx echo.Context, channel string) error {
	if channel == "" {
		return badRequest(ctx, "channel is required")
	}

	events, unsubscribe := s.subscriber.Subscribe(channel)
	defer unsubscribe()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case n, ok := <-events:
			if !ok {
				return nil
			}
			data, err := json.Marshal(n)
			if err != nil {
				s.logger.Warn("notification not encodable", "channel", channel, "error", err)
				continue
			}
			if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", n.EventType, data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
