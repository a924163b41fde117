package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kasaops/treasury/internal/apperrors"
	portssvc "github.com/kasaops/treasury/internal/core/ports/services"
	"github.com/kasaops/treasury/internal/dto"
	"github.com/kasaops/treasury/internal/middleware"
)

// accountHandler handles HTTP requests related to payment accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
		ledgerService:  ls,
	}
}

// registerAccountRoutes registers routes related to payment accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountSvc portssvc.AccountSvcFacade, ledgerSvc portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountSvc, ledgerSvc)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
		accounts.GET("/:account_id/balance", h.getBalance)
		accounts.GET("/:account_id/movements", h.listMovements)
	}
}

// createAccount godoc
// @Summary Create a payment account
// @Description Creates a new payment account for the entity. Kind and currency are fixed at creation.
// @Tags accounts
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Duplicate account number"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), entityID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Account number already in use for this entity"})
		default:
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get a payment account by ID
// @Tags accounts
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param account_id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), entityID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List payment accounts for an entity
// @Tags accounts
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), entityID, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		logger.Error("Failed to list accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount godoc
// @Summary Update a payment account's display metadata
// @Description Updates name, description or active flag. Kind and currency are immutable.
// @Tags accounts
// @Accept json
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param account_id path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	accountID := c.Param("account_id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), entityID, accountID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate a payment account
// @Description Marks an account inactive. Its movement history remains intact.
// @Tags accounts
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param account_id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	accountID := c.Param("account_id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), entityID, accountID, actor); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to deactivate account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get an account balance
// @Description Folds the account's movement log with posting date <= asOf (default: latest)
// @Tags accounts
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param account_id path string true "Account ID"
// @Param asOf query string false "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	accountID := c.Param("account_id")

	var asOf *time.Time
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = &parsed
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), entityID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account for balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		}
		return
	}

	balance, err := h.ledgerService.ComputeBalance(c.Request.Context(), entityID, accountID, asOf)
	if err != nil {
		logger.Error("Failed to compute balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID:    accountID,
		CurrencyCode: account.CurrencyCode,
		Balance:      balance,
		AsOf:         asOf,
	})
}

// listMovements godoc
// @Summary List an account's movements
// @Description Returns the account's movement stream in canonical order with cursor pagination
// @Tags accounts
// @Produce json
// @Param entity_id path string true "Entity ID"
// @Param account_id path string true "Account ID"
// @Param from query string false "Start posting date (YYYY-MM-DD)"
// @Param to query string false "End posting date (YYYY-MM-DD)"
// @Param limit query int false "Limit number of results" default(50)
// @Param nextToken query string false "Pagination cursor from a previous response"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Security BearerAuth
// @Router /entities/{entity_id}/accounts/{account_id}/movements [get]
func (h *accountHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entityID := c.Param("entity_id")
	accountID := c.Param("account_id")

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListMovements(c.Request.Context(), entityID, accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to list movements from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
