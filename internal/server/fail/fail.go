package fail

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type response struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func Fail(c echo.Context, status int, format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)

	zap.L().Warn(message)

	return c.JSON(status, &response{
		Error: message,
	})
}

func FailErr(c echo.Context, status int, err error, format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)

	zap.L().Warn(message, zap.Error(err))

	return c.JSON(status, &response{
		Error:   message,
		Details: err.Error(),
	})
}
