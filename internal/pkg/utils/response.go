package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terrain-analyst/internal/pkg/errors"
)

const MIMEApplicationMsgpack = "application/msgpack"

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Operation string  `json:"operation,omitempty"`
	TimeMSec  float64 `json:"time_ms,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return send(c, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		c.Status(appErr.StatusCode)
		return send(c, ErrorResponse{Error: appErr})
	}

	// Unknown error - return 500
	c.Status(fiber.StatusInternalServerError)
	return send(c, ErrorResponse{Error: errors.ErrInternalServer})
}

// SendRaw отправляет тело без обёртки data/meta
func SendRaw(c *fiber.Ctx, body interface{}) error {
	return send(c, body)
}

// WantsMsgpack - клиент запросил msgpack через ?encoding= или Accept
func WantsMsgpack(c *fiber.Ctx) bool {
	if strings.EqualFold(c.Query("encoding"), "msgpack") {
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), MIMEApplicationMsgpack)
}

func send(c *fiber.Ctx, body interface{}) error {
	if !WantsMsgpack(c) {
		return c.JSON(body)
	}
	payload, err := MarshalMsgpack(body)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, MIMEApplicationMsgpack)
	return c.Send(payload)
}
