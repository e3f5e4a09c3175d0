package api

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ugc-studio/internal/service"
)

const (
	// Time allowed to write one message to the client.
	writeWait = 10 * time.Second
	// Clients only send close frames.
	maxMessageSize = 512
)

func (h *Handler) runPipeline(c *gin.Context) {
	result, err := h.pipeline.Run(c.Request.Context(), c.Param("id"), nil)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(h.origins) == 0 || slices.Contains(h.origins, origin)
		},
	}
}

// pipelineStream runs the pipeline and sends one event per step, then the
// result or the error. Closing the socket cancels the run.
func (h *Handler) pipelineStream(c *gin.Context) {
	brandID := c.Param("brandId")
	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection", zap.String("brand_id", brandID), zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(event pipelineEvent) {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("Pipeline stream write failed", zap.String("brand_id", brandID), zap.Error(err))
			cancel()
		}
	}

	h.logger.Info("Pipeline stream started", zap.String("brand_id", brandID))
	result, err := h.pipeline.Run(ctx, brandID, func(step service.Step) {
		send(pipelineEvent{Type: "step", Step: step})
	})
	if err != nil {
		send(pipelineEvent{Type: "error", Error: err.Error(), Status: statusFor(err)})
	} else {
		send(pipelineEvent{Type: "result", Result: result})
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
