package api

import (
	"net/http"

	"backoffice/internal/platform"
	appErr "backoffice/pkg/errors"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

// mutated writes the platform's acknowledgement, or maps err.
func (h *Handler) mutated(c *gin.Context, res *platform.MutationResult, err error) {
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.SuccessWithMsg(c, res, res.Message)
}

func (h *Handler) ListCashback(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.services.Cashback.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, page)
}

func (h *Handler) ListCashbackLogs(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.services.Cashback.Logs(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, page)
}

func (h *Handler) GetCashback(c *gin.Context) {
	cfg, err := h.services.Cashback.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, cfg)
}

func (h *Handler) CreateCashback(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Cashback.Create(c.Request.Context(), raw)
	h.mutated(c, res, err)
}

func (h *Handler) UpdateCashback(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Cashback.Update(c.Request.Context(), c.Param("id"), raw)
	h.mutated(c, res, err)
}

func (h *Handler) DeleteCashback(c *gin.Context) {
	res, err := h.services.Cashback.Delete(c.Request.Context(), c.Param("id"))
	h.mutated(c, res, err)
}

func (h *Handler) ListWagerRaces(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.services.WagerRace.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, page)
}

// GetWagerRace pages through participants with page and limit.
func (h *Handler) GetWagerRace(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	detail, err := h.services.WagerRace.Get(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, detail)
}

func (h *Handler) WagerRacePrizePool(c *gin.Context) {
	pool, err := h.services.WagerRace.PrizePool(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, pool)
}

func (h *Handler) CreateWagerRace(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.WagerRace.Create(c.Request.Context(), raw)
	h.mutated(c, res, err)
}

func (h *Handler) UpdateWagerRace(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.WagerRace.Update(c.Request.Context(), c.Param("id"), raw)
	h.mutated(c, res, err)
}

func (h *Handler) DeleteWagerRace(c *gin.Context) {
	res, err := h.services.WagerRace.Delete(c.Request.Context(), c.Param("id"))
	h.mutated(c, res, err)
}

func (h *Handler) ListBonuses(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.services.Bonus.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, page)
}

func (h *Handler) GetBonus(c *gin.Context) {
	b, err := h.services.Bonus.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, b)
}

func (h *Handler) CreateBonus(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Bonus.Create(c.Request.Context(), raw)
	h.mutated(c, res, err)
}

func (h *Handler) UpdateBonus(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Bonus.Update(c.Request.Context(), c.Param("id"), raw)
	h.mutated(c, res, err)
}

func (h *Handler) DeleteBonus(c *gin.Context) {
	res, err := h.services.Bonus.Delete(c.Request.Context(), c.Param("id"))
	h.mutated(c, res, err)
}

func (h *Handler) UploadBonusBanner(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.handleError(c, appErr.ErrMissingUpload)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	defer f.Close()

	res, err := h.services.Bonus.UploadBanner(c.Request.Context(), fh.Filename, f)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, res)
}

func (h *Handler) ListWheelBonuses(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.services.Bonus.ListWheels(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, page)
}

func (h *Handler) GetWheelBonus(c *gin.Context) {
	w, err := h.services.Bonus.GetWheel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, w)
}

func (h *Handler) CreateWheelBonus(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Bonus.CreateWheel(c.Request.Context(), raw)
	h.mutated(c, res, err)
}

func (h *Handler) UpdateWheelBonus(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Bonus.UpdateWheel(c.Request.Context(), c.Param("id"), raw)
	h.mutated(c, res, err)
}

func (h *Handler) DeleteWheelBonus(c *gin.Context) {
	res, err := h.services.Bonus.DeleteWheel(c.Request.Context(), c.Param("id"))
	h.mutated(c, res, err)
}

func (h *Handler) ListTiers(c *gin.Context) {
	params, ok := listParams(c)
	if !ok {
		return
	}
	page, err := h.services.Tier.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, page)
}

func (h *Handler) CreateTier(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Tier.Create(c.Request.Context(), raw)
	h.mutated(c, res, err)
}

func (h *Handler) UpdateTier(c *gin.Context) {
	raw, ok := bindRaw(c)
	if !ok {
		return
	}
	res, err := h.services.Tier.Update(c.Request.Context(), c.Param("id"), raw)
	h.mutated(c, res, err)
}

// DeleteTier removes the whole tier, or one level with ?levelId=.
func (h *Handler) DeleteTier(c *gin.Context) {
	res, err := h.services.Tier.Delete(c.Request.Context(), c.Param("id"), c.Query("levelId"))
	h.mutated(c, res, err)
}

func (h *Handler) UpdateTierImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		h.handleError(c, appErr.ErrMissingUpload)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	defer f.Close()

	res, err := h.services.Tier.UpdateImage(c.Request.Context(), c.Param("id"), fh.Filename, f)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, res)
}
