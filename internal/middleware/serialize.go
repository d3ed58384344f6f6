package middleware

import (
	"sync"

	"github.com/labstack/echo/v4"
)

// Serialize runs one request at a time so the storefront engine only ever
// sees a single writer.
func Serialize() echo.MiddlewareFunc {
	var mu sync.Mutex
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			mu.Lock()
			defer mu.Unlock()
			return next(c)
		}
	}
}
