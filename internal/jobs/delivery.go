package jobs

import "github.com/labstack/echo/v4"

type Handler interface {
	ProcessVideo() echo.HandlerFunc
}
