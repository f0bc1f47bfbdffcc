package http

import (
	"context"
	"net/http"

	"rental-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	return bindAndRun(c, http.StatusCreated, h.uc.Create)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Update(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in application.UpdateInput) (*application.ApplicationDTO, error) {
		return h.uc.UpdateNotes(ctx, c.Param("id"), in)
	})
}

func (h *ApplicationHandler) List(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, h.uc.List)
}

func (h *ApplicationHandler) StartReview(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in application.StartReviewInput) (*application.ApplicationDTO, error) {
		return h.uc.StartReview(ctx, c.Param("id"), in)
	})
}

func (h *ApplicationHandler) Approve(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in application.ApproveInput) (*application.ApplicationDTO, error) {
		return h.uc.Approve(ctx, c.Param("id"), in)
	})
}

func (h *ApplicationHandler) Reject(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in application.RejectInput) (*application.ApplicationDTO, error) {
		return h.uc.Reject(ctx, c.Param("id"), in)
	})
}

func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in application.WithdrawInput) (*application.ApplicationDTO, error) {
		return h.uc.Withdraw(ctx, c.Param("id"), in)
	})
}

func (h *ApplicationHandler) Reserve(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in application.ReserveInput) (*application.ApplicationDTO, error) {
		return h.uc.Reserve(ctx, c.Param("id"), in)
	})
}

func (h *ApplicationHandler) SignContract(c echo.Context) error {
	return bindAndRun(c, http.StatusOK, func(ctx context.Context, in application.SignContractInput) (*application.ApplicationDTO, error) {
		return h.uc.SignContract(ctx, c.Param("id"), in)
	})
}
