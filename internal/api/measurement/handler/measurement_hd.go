package measurementHandler

import (
	"VirtualFitting/internal/api/measurement"
	contextPkg "VirtualFitting/pkg/context"
	"VirtualFitting/pkg/handlerUtil"
	"VirtualFitting/pkg/log"
	"context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"time"
)

func (h *MeasurementHandler) handleMeasurementWebSocket(c *websocket.Conn) {
	h.log.Info("Measurement WebSocket client connected")
	defer h.log.Info("Measurement WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		h.log.Debug("Received ping, sending pong")
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Measurement WebSocket error: %v", err)
			} else {
				h.log.Info("Measurement WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		m, err := h.measurementService.MeasureFrame(ctx, message)
		cancel()

		var result measurement.FrameResponse
		if err != nil {
			h.log.Warnf("Error measuring frame: %v", err)
			result.Error = err.Error()
		} else {
			result.UserData = m
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(result); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}
	}
}

func (h *MeasurementHandler) UploadImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	file, err := ctx.FormFile("file")
	if err != nil {
		return errHandler.Handle(ctx, requestID, measurement.ErrNoFilePart, ctx.Path(), "read_form_file")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"file_name":  file.Filename,
		"file_size":  file.Size,
	}).Debug("Processing file upload")

	result, err := h.measurementService.ProcessUpload(c, file)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_upload")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, measurement.UploadResponse{
			Message:        "Image uploaded successfully",
			Filename:       result.Filename,
			UserData:       result.Measurements,
			AnnotatedImage: result.AnnotatedImage,
		})
	}
}

func (h *MeasurementHandler) GetMeasurements(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	m, err := h.measurementService.GetMeasurements(contextPkg.FromFiberCtx(ctx), ctx.Params("filename"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_measurements")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, measurement.MeasurementResponse{UserData: *m})
}
