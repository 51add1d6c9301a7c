package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/interview-assistant/errors"
)

// SessionIDKey is the context key holding the parsed session id
const SessionIDKey = "session_id"

// RequireSessionID parses the :id path parameter as a session id. Anything that
// is not a UUID cannot name a session and is rejected as not found.
func RequireSessionID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Param("id")
			id, err := uuid.Parse(raw)
			if err != nil {
				return errors.ErrSessionNotFound(raw)
			}
			c.Set(SessionIDKey, id)
			return next(c)
		}
	}
}

// SessionID returns the id stored by RequireSessionID
func SessionID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(SessionIDKey).(uuid.UUID)
	return id, ok
}
