package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/johnquangdev/weg-assembly/errors"
	httpmw "github.com/johnquangdev/weg-assembly/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
)

// Context keys set by the access middlewares
const (
	MeetingHandleKey  = "meeting_handle"
	PropertyHandleKey = "property_handle"
)

// RequireMeetingAccess authorizes the caller for the meeting in the :id path
// parameter and stores the handle in the Echo context. It runs on every
// request; handles are never reused.
func RequireMeetingAccess(authorizer access.Authorizer, level access.Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			meetingID, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return apperrors.ErrInvalidArgument("meeting ID must be a valid UUID")
			}
			userID, ok := httpmw.GetUserID(c)
			if !ok {
				return apperrors.ErrUnauthenticated()
			}

			handle, err := authorizer.ForMeeting(c.Request().Context(), userID, meetingID, level)
			if err != nil {
				return err
			}

			c.Set(MeetingHandleKey, handle)
			return next(c)
		}
	}
}

// RequirePropertyAccess authorizes the caller for the property in the
// :propertyId path parameter
func RequirePropertyAccess(authorizer access.Authorizer, level access.Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			propertyID, err := uuid.Parse(c.Param("propertyId"))
			if err != nil {
				return apperrors.ErrInvalidArgument("property ID must be a valid UUID")
			}
			userID, ok := httpmw.GetUserID(c)
			if !ok {
				return apperrors.ErrUnauthenticated()
			}

			handle, err := authorizer.ForProperty(c.Request().Context(), userID, propertyID, level)
			if err != nil {
				return err
			}

			c.Set(PropertyHandleKey, handle)
			return next(c)
		}
	}
}

// MeetingHandle returns the handle stored by RequireMeetingAccess
func MeetingHandle(c echo.Context) (*access.MeetingHandle, bool) {
	h, ok := c.Get(MeetingHandleKey).(*access.MeetingHandle)
	return h, ok
}

// PropertyHandle returns the handle stored by RequirePropertyAccess
func PropertyHandle(c echo.Context) (*access.PropertyHandle, bool) {
	h, ok := c.Get(PropertyHandleKey).(*access.PropertyHandle)
	return h, ok
}
