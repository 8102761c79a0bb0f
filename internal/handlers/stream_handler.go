package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"donation-tracker-backend/internal/utils"
	"donation-tracker-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// StreamEventChanges serves the per-event change feed over SSE. Each change
// is one "change" event carrying {table, op, event_id, row, at}; a comment
// ping every 15 seconds keeps proxies from closing the idle connection.
// @Summary Event change stream
// @Tags Events
// @Produce text/event-stream
// @Param id path string true "Event ID"
// @Router /events/{id}/stream [get]
func (h *Handler) StreamEventChanges(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.Error(c, "Invalid event ID", fiber.StatusBadRequest)
	}

	if _, err := h.eventSvc.GetEvent(eventID.String()); err != nil {
		return utils.Error(c, "Event not found", fiber.StatusNotFound)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	feed := h.feed
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		sub := feed.Subscribe(eventID)
		defer sub.Close()

		ping := time.NewTicker(15 * time.Second)
		defer ping.Stop()

		for {
			select {
			case change, ok := <-sub.C:
				if !ok {
					return
				}
				payload, err := json.Marshal(change)
				if err != nil {
					logger.WithField("table", change.Table).
						Error("failed to encode change: ", err)
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					// client went away
					return
				}
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
