package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/errors"
	"github.com/johnquangdev/weg-assembly/internal/adapter/presenter"
	httpmw "github.com/johnquangdev/weg-assembly/internal/infrastructure/http/middleware"
)

// Account handles requests about the signed-in user
type Account struct {
	logger *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *zap.Logger) *Account {
	return &Account{logger: logger}
}

// Me handles GET /me
// @Summary      Current user
// @Tags         Account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=meeting.UserResponse}
// @Failure      401  {object}  common.ErrorResponse
// @Router       /me [get]
func (h *Account) Me(c echo.Context) error {
	user, ok := httpmw.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToUserResponse(user))
}
