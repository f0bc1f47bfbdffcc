package http

import (
	"net/http"

	"rental-backend/internal/usecase/lead"

	"github.com/labstack/echo/v4"
)

type LeadHandler struct{ uc *lead.Usecase }

func NewLeadHandler(uc *lead.Usecase) *LeadHandler { return &LeadHandler{uc: uc} }

func (h *LeadHandler) Create(c echo.Context) error {
	return bindAndRun(c, http.StatusCreated, h.uc.Create)
}

func (h *LeadHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}
