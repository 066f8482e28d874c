package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"backoffice/internal/config"
	"backoffice/internal/middleware"
	"backoffice/internal/platform"
	"backoffice/internal/schema"
	"backoffice/internal/service"
	"backoffice/internal/ws"
	appErr "backoffice/pkg/errors"
	"backoffice/pkg/logger"
	"backoffice/pkg/requestid"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}
	wsHandler := ws.NewHandler(services.Search)

	r.Use(middleware.RequestID())
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	adminGroup := r.Group("/admin")
	{
		adminGroup.POST("/auth/login", handler.Login)
		adminGroup.GET("/ws/user-search", wsHandler.HandleUserSearch)

		protected := adminGroup.Group("/")
		protected.Use(middleware.AdminAuthRequired())
		{
			protected.GET("/auth/me", handler.Me)
			protected.GET("/operators", handler.ListOperators)
			protected.GET("/audit-logs", handler.ListAuditLogs)
			protected.GET("/settings/editor", handler.EditorSettings)
			protected.GET("/validate", handler.ListEntities)
			protected.POST("/validate/:entity", handler.ValidateEntity)

			protected.GET("/cashback", handler.ListCashback)
			protected.GET("/cashback/logs", handler.ListCashbackLogs)
			protected.GET("/cashback/:id", handler.GetCashback)
			protected.POST("/cashback", handler.CreateCashback)
			protected.PUT("/cashback/:id", handler.UpdateCashback)
			protected.DELETE("/cashback/:id", handler.DeleteCashback)

			protected.GET("/wager-races", handler.ListWagerRaces)
			protected.GET("/wager-races/:id", handler.GetWagerRace)
			protected.GET("/wager-races/:id/prize-pool", handler.WagerRacePrizePool)
			protected.POST("/wager-races", handler.CreateWagerRace)
			protected.PUT("/wager-races/:id", handler.UpdateWagerRace)
			protected.DELETE("/wager-races/:id", handler.DeleteWagerRace)

			protected.GET("/bonuses", handler.ListBonuses)
			protected.POST("/bonuses/banner", handler.UploadBonusBanner)
			protected.GET("/bonuses/:id", handler.GetBonus)
			protected.POST("/bonuses", handler.CreateBonus)
			protected.PUT("/bonuses/:id", handler.UpdateBonus)
			protected.DELETE("/bonuses/:id", handler.DeleteBonus)

			protected.GET("/wheel-bonuses", handler.ListWheelBonuses)
			protected.GET("/wheel-bonuses/:id", handler.GetWheelBonus)
			protected.POST("/wheel-bonuses", handler.CreateWheelBonus)
			protected.PUT("/wheel-bonuses/:id", handler.UpdateWheelBonus)
			protected.DELETE("/wheel-bonuses/:id", handler.DeleteWheelBonus)

			protected.GET("/tiers", handler.ListTiers)
			protected.POST("/tiers", handler.CreateTier)
			protected.PUT("/tiers/:id", handler.UpdateTier)
			protected.DELETE("/tiers/:id", handler.DeleteTier)
			protected.POST("/tiers/:id/image", handler.UpdateTierImage)

			protected.GET("/dashboard/assets", handler.AssetTotal)
			protected.GET("/dashboard/referrals", handler.Referrals)
			protected.GET("/dashboard/overview", handler.Overview)
		}
	}
}

type loginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.Operator.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, appErr.ErrOperatorNotFound), errors.Is(err, appErr.ErrInvalidOperatorPassword):
			// Unknown usernames and bad passwords look the same from outside.
			response.Error(c, http.StatusUnauthorized, appErr.ErrInvalidOperatorPassword.Error())
		case errors.Is(err, appErr.ErrOperatorDisabled):
			response.Error(c, http.StatusForbidden, err.Error())
		default:
			h.handleError(c, err)
		}
		return
	}
	response.Success(c, result)
}

func (h *Handler) Me(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	info, err := h.services.Operator.Get(c.Request.Context(), operatorID)
	if err != nil {
		if errors.Is(err, appErr.ErrOperatorNotFound) {
			response.Error(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.handleError(c, err)
		return
	}
	response.Success(c, gin.H{"operator": info})
}

func (h *Handler) ListOperators(c *gin.Context) {
	page, size, ok := parsePaging(c, "size")
	if !ok {
		return
	}
	result, err := h.services.Operator.List(c.Request.Context(), page, size)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *Handler) EditorSettings(c *gin.Context) {
	key := ""
	if config.GlobalConfig != nil {
		key = config.GlobalConfig.Platform.EditorAPIKey
	}
	response.Success(c, gin.H{"apiKey": key})
}

func (h *Handler) ListEntities(c *gin.Context) {
	response.Success(c, gin.H{"entities": schema.Entities()})
}

// ValidateEntity checks a form payload without submitting it anywhere and
// returns the coerced object.
func (h *Handler) ValidateEntity(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	entity, err := schema.ParseEntity(c.Param("entity"), raw)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, entity)
}

// handleError maps service failures onto HTTP statuses. Platform failures
// carry a message that is safe to show the operator.
func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appErr.ErrInvalidID),
		errors.Is(err, appErr.ErrInvalidProperty),
		errors.Is(err, appErr.ErrMissingUpload),
		errors.Is(err, appErr.ErrUnsupportedUpload):
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, appErr.ErrUnknownEntity), errors.Is(err, appErr.ErrWagerRaceNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, appErr.ErrMalformedAmount):
		h.logFailure(c, err)
		response.Error(c, http.StatusBadGateway, err.Error())
		return
	}

	var perr *platform.Error
	if errors.As(err, &perr) {
		status := http.StatusBadGateway
		if perr.Kind == platform.KindServer && perr.StatusCode >= 400 && perr.StatusCode < 500 {
			status = perr.StatusCode
		}
		if status >= 500 {
			h.logFailure(c, err)
		}
		response.Error(c, status, perr.Message)
		return
	}

	// Field errors only ever describe the operator's own input. A platform
	// response failing the same checks was handled above as a bad gateway.
	var verrs schema.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithData(c, http.StatusUnprocessableEntity, gin.H{"errors": verrs}, "validation failed")
		return
	}

	h.logFailure(c, err)
	response.Error(c, http.StatusInternalServerError, err.Error())
}

func (h *Handler) logFailure(c *gin.Context, err error) {
	logger.With(requestid.FromContext(c.Request.Context())).Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
}

func bindRaw(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if raw == nil {
		response.Error(c, http.StatusBadRequest, "request body must be a JSON object")
		return nil, false
	}
	return raw, true
}

func listParams(c *gin.Context) (platform.ListParams, bool) {
	page, limit, ok := parsePaging(c, "limit")
	if !ok {
		return platform.ListParams{}, false
	}
	return platform.ListParams{
		Page:   page,
		Limit:  limit,
		Filter: c.Query("filter"),
		Search: c.Query("search"),
	}, true
}

func parsePaging(c *gin.Context, sizeKey string) (int, int, bool) {
	page, err := parsePositiveIntQuery(c, "page", 1)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	size, err := parsePositiveIntQuery(c, sizeKey, platform.DefaultLimit)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return page, size, true
}

func parsePositiveIntQuery(c *gin.Context, key string, defaultVal int) (int, error) {
	val := c.Query(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func parseInt64Query(c *gin.Context, key string) (int64, error) {
	val := c.Query(key)
	if val == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func getOperatorID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(middleware.ContextOperatorIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
