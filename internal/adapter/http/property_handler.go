package http

import (
	"net/http"

	"rental-backend/internal/usecase/property"

	"github.com/labstack/echo/v4"
)

type PropertyHandler struct{ uc *property.Usecase }

func NewPropertyHandler(uc *property.Usecase) *PropertyHandler { return &PropertyHandler{uc: uc} }

func (h *PropertyHandler) Create(c echo.Context) error {
	return bindAndRun(c, http.StatusCreated, h.uc.Create)
}

func (h *PropertyHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}
