package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/dto"
	"github.com/termvault/fd_account_app/internal/middleware"
)

// withdrawalHandler handles premature withdrawal requests.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

// registerWithdrawalRoutes registers premature withdrawal routes.
func registerWithdrawalRoutes(rg *gin.RouterGroup, withdrawalService portssvc.WithdrawalSvcFacade) {
	h := &withdrawalHandler{withdrawalService: withdrawalService}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:accountNumber/withdrawal-inquiry", h.inquiry)
		accounts.POST("/:accountNumber/premature-withdrawal", h.execute)
	}
}

// inquiry godoc
// @Summary Quote a premature withdrawal
// @Description Non-mutating penalty and payout quote for an ACTIVE account
// @Tags withdrawals
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Success 200 {object} dto.WithdrawalInquiryResponse
// @Router /accounts/{accountNumber}/withdrawal-inquiry [get]
func (h *withdrawalHandler) inquiry(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	inquiry, err := h.withdrawalService.Inquiry(c.Request.Context(), accountNumber)
	if err != nil {
		respondWithError(c, err, "Failed to compute withdrawal inquiry")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalInquiryResponse(inquiry))
}

// execute godoc
// @Summary Execute a premature withdrawal
// @Description Posts penalty and payout transactions and closes the account
// @Tags withdrawals
// @Accept  json
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   request body dto.ExecuteWithdrawalRequest false "Closure reason"
// @Success 200 {object} dto.AccountResponse
// @Router /accounts/{accountNumber}/premature-withdrawal [post]
func (h *withdrawalHandler) execute(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("accountNumber")

	var req dto.ExecuteWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Warn("Failed to bind JSON for execute withdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.withdrawalService.Execute(c.Request.Context(), accountNumber, req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to execute premature withdrawal")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
