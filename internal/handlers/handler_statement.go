package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/termvault/fd_account_app/internal/core/ports/services"
	"github.com/termvault/fd_account_app/internal/dto"
)

const statementDateLayout = "2006-01-02"

// statementHandler handles statement requests.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// registerStatementRoutes registers statement routes.
func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := &statementHandler{statementService: statementService}

	rg.GET("/accounts/:accountNumber/statement", h.buildStatement)
	rg.POST("/statements/run", h.runBatch)
}

// buildStatement godoc
// @Summary Build an account statement for a period
// @Tags statements
// @Produce  json
// @Param   accountNumber path string true "Account number"
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Router /accounts/{accountNumber}/statement [get]
func (h *statementHandler) buildStatement(c *gin.Context) {
	accountNumber := c.Param("accountNumber")

	periodStart, periodEnd, ok := parsePeriod(c)
	if !ok {
		return
	}

	statement, err := h.statementService.BuildStatement(c.Request.Context(), accountNumber, periodStart, periodEnd)
	if err != nil {
		respondWithError(c, err, "Failed to build statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// runBatch godoc
// @Summary Run statement generation over all active accounts
// @Tags statements
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementBatchResult
// @Router /statements/run [post]
func (h *statementHandler) runBatch(c *gin.Context) {
	periodStart, periodEnd, ok := parsePeriod(c)
	if !ok {
		return
	}

	result, err := h.statementService.RunBatch(c.Request.Context(), periodStart, periodEnd)
	if err != nil {
		respondWithError(c, err, "Failed to run statement batch")
		return
	}
	c.JSON(http.StatusOK, result)
}

func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.ParseInLocation(statementDateLayout, c.Query("from"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.ParseInLocation(statementDateLayout, c.Query("to"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
