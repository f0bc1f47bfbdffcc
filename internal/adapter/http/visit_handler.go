package http

import (
	"context"
	"net/http"

	"rental-backend/internal/usecase/visit"

	"github.com/labstack/echo/v4"
)

type VisitHandler struct{ uc *visit.Usecase }

func NewVisitHandler(uc *visit.Usecase) *VisitHandler { return &VisitHandler{uc: uc} }

func (h *VisitHandler) Schedule(c echo.Context) error {
	return bindAndRun(c, http.StatusCreated, func(ctx context.Context, in visit.ScheduleInput) (*visit.VisitDTO, error) {
		return h.uc.Schedule(ctx, c.Param("id"), in)
	})
}

func (h *VisitHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VisitHandler) Complete(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in visit.CompleteInput) (*visit.VisitDTO, error) {
		return h.uc.Complete(ctx, c.Param("id"), c.Param("visitId"), in)
	})
}

func (h *VisitHandler) Cancel(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in visit.CancelInput) (*visit.VisitDTO, error) {
		return h.uc.Cancel(ctx, c.Param("id"), c.Param("visitId"), in)
	})
}

func (h *VisitHandler) NoShow(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in visit.NoShowInput) (*visit.VisitDTO, error) {
		return h.uc.MarkNoShow(ctx, c.Param("id"), c.Param("visitId"), in)
	})
}
