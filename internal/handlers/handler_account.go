package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/termvault/fd_account_app/internal/apperrors"
	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/dto"
	"github.com/termvault/fd_account_app/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.findAccounts)
		accounts.POST("/:accountNumber/roles", h.addRole)
	}
}

// createAccount godoc
// @Summary Open a fixed deposit account
// @Description Opens an account from a calculation result for the owning customer
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account opening details"
// @Success 201 {object} dto.AccountResponse
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// addRole godoc
// @Summary Add a holder role to an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   role body dto.AddRoleRequest true "Role details"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountNumber}/roles [post]
func (h *accountHandler) addRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.AddRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.AddRoleToAccount(c.Request.Context(), accountNumber, req)
	if err != nil {
		respondWithError(c, err, "Failed to add role")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// findAccounts godoc
// @Summary Search accounts
// @Description Searches by account number, customer id or name substring
// @Tags accounts
// @Produce  json
// @Param   searchKind query string true "ACCOUNT_NUMBER | CUSTOMER_ID | ACCOUNT_NAME"
// @Param   value query string true "Search value"
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *accountHandler) findAccounts(c *gin.Context) {
	kind := dto.AccountSearchKind(c.Query("searchKind"))
	value := c.Query("value")

	accounts, err := h.accountService.FindAccounts(c.Request.Context(), kind, value)
	if err != nil {
		respondWithError(c, err, "Failed to search accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// respondWithError maps error kinds onto HTTP statuses.
func respondWithError(c *gin.Context, err error, logMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPolicyViolation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUpstreamUnavailable):
		logger.Error(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream service unavailable"})
	default:
		logger.Error(logMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
