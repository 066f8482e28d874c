package api

import (
	"net/http"

	auditsvc "backoffice/internal/service/audit"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

// AssetTotal answers ?property=availableAmount|totalAmount|blockedAmount|allocatedAmount.
func (h *Handler) AssetTotal(c *gin.Context) {
	total, err := h.services.Dashboard.AssetTotal(c.Request.Context(), c.Query("property"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, total)
}

func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.services.Dashboard.Overview(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, overview)
}

func (h *Handler) Referrals(c *gin.Context) {
	summary, err := h.services.Dashboard.Referrals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, summary)
}

func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, size, ok := parsePaging(c, "size")
	if !ok {
		return
	}
	operatorID, err := parseInt64Query(c, "operatorId")
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.Audit.List(c.Request.Context(), auditsvc.ListParams{
		Page:       page,
		Size:       size,
		Resource:   c.Query("resource"),
		OperatorID: operatorID,
		Outcome:    c.Query("outcome"),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}
