package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-quizhub/quizhub/pkg/errs"
)

type Response struct {
	Code   int    `json:"code"`
	Detail any    `json:"detail,omitempty"`
	Msg    string `json:"msg"`
}

// WithRepJSON returns a success envelope carrying detail.
func WithRepJSON(c *fiber.Ctx, detail any) error {
	return c.JSON(Response{
		Code:   Success.Code,
		Detail: detail,
		Msg:    Success.Msg,
	})
}

// WithRepMsg returns a custom code and msg.
func WithRepMsg(c *fiber.Ctx, code int, msg string) error {
	return c.JSON(Response{
		Code: code,
		Msg:  msg,
	})
}

// WithRepNotDetail returns a success envelope without detail.
func WithRepNotDetail(c *fiber.Ctx) error {
	return c.JSON(Response{
		Code: Success.Code,
		Msg:  Success.Msg,
	})
}

// WithRepBizErr maps a service error to the response envelope by kind.
func WithRepBizErr(c *fiber.Ctx, err error) error {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return WithRepErrMsg(c, NotFound.Code, err.Error(), c.Path())
	case errs.KindForbidden:
		return WithRepErrMsg(c, Forbidden.Code, err.Error(), c.Path())
	case errs.KindConflict:
		return WithRepErrMsg(c, Conflict.Code, err.Error(), c.Path())
	default:
		return WithRepErrMsg(c, Failed.Code, Failed.Msg, c.Path())
	}
}
