package handler

import (
	"context"
	stdErrors "errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/errors"
	"github.com/johnquangdev/weg-assembly/internal/adapter/dto/common"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
	httpmw "github.com/johnquangdev/weg-assembly/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
	"github.com/johnquangdev/weg-assembly/pkg/opcontext"
	pkgvalidator "github.com/johnquangdev/weg-assembly/pkg/validator"
)

// getRequestID reads the request id set by the RequestID middleware, falling
// back to the incoming header
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// operationContext starts the per-request operation context
func operationContext(c echo.Context, operation string) (context.Context, context.CancelFunc) {
	userID, _ := httpmw.GetUserID(c)
	return opcontext.Begin(c.Request().Context(), operation, userID, getRequestID(c))
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, common.SuccessResponse{Success: true, Data: data})
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("app_code", appErr.Code.String()),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Info("http.response.error", fields...)
		}
	}

	body := common.ErrorResponse{
		Success: false,
		Error: common.ErrorBody{
			Code:    appErr.Code.String(),
			Message: errors.Localize(appErr.Code, c.Request().Header.Get("Accept-Language"), appErr.Message),
			Details: appErr.Details,
		},
	}

	return c.JSON(appErr.HTTPCode, body)
}

// ErrorHandler renders errors returned by middlewares and unmatched routes in
// the same envelope as handler errors
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if herr := HandleError(logger, c, err); herr != nil {
			logger.Error("failed to write error response", zap.Error(herr))
		}
	}
}

// toAppError maps use-case sentinels and transport errors to AppError.
// Anything unknown becomes an internal error.
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	switch {
	// not found
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrPropertyNotFound):
		return errors.ErrPropertyNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrAgendaItemNotFound):
		return errors.ErrAgendaItemNotFound()
	case stdErrors.Is(err, usecaseErrors.ErrResolutionNotFound):
		return errors.ErrResolutionNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrParticipantNotFound):
		return errors.ErrParticipantNotFound("")
	case stdErrors.Is(err, usecaseErrors.ErrProtocolNotArchived), stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("Resource")

	// authorization
	case stdErrors.Is(err, usecaseErrors.ErrNotMember):
		return errors.ErrPermissionDenied("not a member of the organization")
	case stdErrors.Is(err, usecaseErrors.ErrNotOwner):
		return errors.ErrPermissionDenied("owner role required")
	case stdErrors.Is(err, usecaseErrors.ErrUnauthorized):
		return errors.ErrUnauthenticated()
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		return errors.ErrPermissionDenied("forbidden")

	// validation
	case stdErrors.Is(err, usecaseErrors.ErrInvalidVoteChoice):
		return errors.ErrVoteChoiceInvalid()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidAttendanceStatus):
		return errors.ErrAttendanceInvalid()
	case stdErrors.Is(err, usecaseErrors.ErrChairRequired):
		return errors.ErrChairRequired()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidMajorityType),
		stdErrors.Is(err, usecaseErrors.ErrInvalidLeaderRole),
		stdErrors.Is(err, usecaseErrors.ErrInvalidAgendaOrder),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())

	// preconditions
	case stdErrors.Is(err, usecaseErrors.ErrMeetingCompleted):
		return errors.ErrMeetingCompleted()
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotPlanned):
		return errors.ErrMeetingInvalidState("not planned", "planned")
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotInProgress):
		return errors.ErrMeetingInvalidState("not in progress", "in-progress")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidConductTransition):
		return errors.ErrMeetingInvalidState("conduct step", "previous conduct step")
	case stdErrors.Is(err, usecaseErrors.ErrParticipantsAlreadyExist):
		return errors.ErrParticipantsAlreadyExist()
	case stdErrors.Is(err, usecaseErrors.ErrNoVotingUnits):
		return errors.ErrNoVotingUnits()
	case stdErrors.Is(err, usecaseErrors.ErrLeadersNotConfirmed):
		return errors.ErrLeadersNotConfirmed()
	case stdErrors.Is(err, usecaseErrors.ErrParticipantsNotConfirmed):
		return errors.ErrParticipantsNotConfirmed()
	case stdErrors.Is(err, usecaseErrors.ErrResolutionNotRequired):
		return errors.ErrResolutionNotRequired()
	case stdErrors.Is(err, usecaseErrors.ErrVoteRequired):
		return errors.ErrVoteRequired()
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyExists), stdErrors.Is(err, repositories.ErrDuplicateKey):
		return errors.ErrAlreadyExists()

	// integrations
	case stdErrors.Is(err, usecaseErrors.ErrStorageFailed):
		return errors.ErrStorageFailed("protocol download", err)
	}

	return errors.ErrInternal(err)
}

func fromHTTPError(httpErr *echo.HTTPError) errors.AppError {
	switch httpErr.Code {
	case http.StatusNotFound:
		return errors.ErrNotFound("Route")
	case http.StatusUnauthorized:
		return errors.ErrUnauthenticated()
	case http.StatusForbidden:
		return errors.ErrPermissionDenied("forbidden")
	case http.StatusMethodNotAllowed, http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		appErr := errors.ErrInvalidPayload()
		appErr.HTTPCode = httpErr.Code
		return appErr
	}
	if httpErr.Code >= http.StatusInternalServerError {
		return errors.ErrInternal(httpErr)
	}
	appErr := errors.ErrInvalidArgument(http.StatusText(httpErr.Code))
	appErr.HTTPCode = httpErr.Code
	return appErr
}

// bindAndValidate decodes the request body into req and validates it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidArgument("validation failed")
		for field, tag := range pkgvalidator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, tag)
		}
		return appErr
	}
	return nil
}

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(name + " must be a valid UUID")
	}
	return id, nil
}
