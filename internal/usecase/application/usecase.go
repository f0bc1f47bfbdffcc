package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-backend/internal/apperr"
	domain "rental-backend/internal/domain/application"
	"rental-backend/internal/domain/uow"
	"rental-backend/internal/infrastructure/logging"
	"rental-backend/internal/infrastructure/metrics"
	"rental-backend/internal/validation"
	"rental-backend/pkg/id"
	"rental-backend/pkg/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Usecase struct {
	apps domain.Repository
	uow  uow.UnitOfWork
	log  *zap.Logger
	now  func() time.Time
}

// NewUsecase: apps serves reads, tx every write.
func NewUsecase(apps domain.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{apps: apps, uow: tx, log: logging.OrNop(log), now: time.Now}
}

// WithClock overrides the creation timestamp source.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// lookupErr turns a missing row into a NotFoundError for entity/id.
func lookupErr(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var out *domain.View
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Leads.GetByID(ctx, in.LeadID)
		if err != nil {
			return lookupErr(err, "Lead", in.LeadID)
		}
		p, err := r.Properties.GetByID(ctx, in.PropertyID)
		if err != nil {
			return lookupErr(err, "Property", in.PropertyID)
		}

		a := &domain.Application{
			ID:         id.New(),
			LeadID:     in.LeadID,
			PropertyID: in.PropertyID,
			Status:     domain.StatusNew,
			CreatedAt:  u.now().UTC(),
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return fmt.Errorf("create application: %w", err)
		}
		out = &domain.View{Application: *a, LeadName: &l.Name, PropertyAddress: &p.Address}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("application created",
		zap.String("application_id", out.ID),
		zap.String("lead_id", out.LeadID),
		zap.String("property_id", out.PropertyID))
	return toDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, appID string) (*ApplicationDTO, error) {
	v, err := u.apps.GetWithJoins(ctx, appID)
	if err != nil {
		return nil, lookupErr(err, "Application", appID)
	}
	return toDTO(v), nil
}

// UpdateNotes is the plain edit: notes only, no status guard.
func (u *Usecase) UpdateNotes(ctx context.Context, appID string, in UpdateInput) (*ApplicationDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	var notes any
	if in.Notes != nil {
		notes = *in.Notes
	}
	err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *domain.Application) error {
		return r.Applications.UpdateFields(ctx, a.ID, nil, map[string]any{"notes": notes})
	})
	if err != nil {
		return nil, lookupErr(err, "Application", appID)
	}
	return u.Get(ctx, appID)
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*pagination.Page[ApplicationDTO], error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	pageNumber, pageSize := in.PageNumber, in.PageSize
	if pageNumber == 0 {
		pageNumber = 1
	}
	if pageSize == 0 {
		pageSize = pagination.DefaultPageSize
	}

	f := domain.ListFilter{PropertyID: in.PropertyID, LeadID: in.LeadID}
	if in.StartCreatedAt != "" {
		since, err := validation.ParseDate(in.StartCreatedAt)
		if err != nil {
			return nil, apperr.Field("startCreatedAt", "format", err.Error())
		}
		f.StartCreatedAt = &since
	}

	rows, total, err := u.apps.List(ctx, f, pagination.Offset(pageNumber, pageSize), pageSize)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	items := make([]ApplicationDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *toDTO(&rows[i]))
	}
	page := pagination.New(items, total, pageNumber, pageSize)
	return &page, nil
}

func (u *Usecase) StartReview(ctx context.Context, appID string, in StartReviewInput) (*ApplicationDTO, error) {
	return u.transition(ctx, appID, domain.ActionStartReview, in, func() domain.Payload {
		return domain.Payload{At: mustDate(in.ReviewStartedAt)}
	})
}

func (u *Usecase) Approve(ctx context.Context, appID string, in ApproveInput) (*ApplicationDTO, error) {
	return u.transition(ctx, appID, domain.ActionApprove, in, func() domain.Payload {
		return domain.Payload{At: mustDate(in.ApprovedAt)}
	})
}

func (u *Usecase) Reject(ctx context.Context, appID string, in RejectInput) (*ApplicationDTO, error) {
	return u.transition(ctx, appID, domain.ActionReject, in, func() domain.Payload {
		return domain.Payload{At: mustDate(in.RejectedAt), Reason: in.RejectedReason}
	})
}

func (u *Usecase) Withdraw(ctx context.Context, appID string, in WithdrawInput) (*ApplicationDTO, error) {
	return u.transition(ctx, appID, domain.ActionWithdraw, in, func() domain.Payload {
		return domain.Payload{At: mustDate(in.WithdrawnAt), Reason: in.WithdrawnReason}
	})
}

func (u *Usecase) Reserve(ctx context.Context, appID string, in ReserveInput) (*ApplicationDTO, error) {
	return u.transition(ctx, appID, domain.ActionReserve, in, func() domain.Payload {
		return domain.Payload{At: mustDate(in.ReservedAt), Amount: in.ReservedAmount}
	})
}

func (u *Usecase) SignContract(ctx context.Context, appID string, in SignContractInput) (*ApplicationDTO, error) {
	return u.transition(ctx, appID, domain.ActionSignContract, in, func() domain.Payload {
		return domain.Payload{At: mustDate(in.ContractSignedAt)}
	})
}

// mustDate is only called on input that already passed the datestr check.
func mustDate(s string) time.Time {
	t, _ := validation.ParseDate(s)
	return t
}

// transition validates in, then evaluates and persists action against the
// locked row. The write is conditional on the status the guard saw.
func (u *Usecase) transition(ctx context.Context, appID string, action domain.Action, in any, payload func() domain.Payload) (*ApplicationDTO, error) {
	if err := validation.Struct(in); err != nil {
		u.record(appID, action, "", err)
		return nil, err
	}
	p := payload()

	var from domain.Status
	err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *domain.Application) error {
		from = a.Status
		_, fields, err := domain.Apply(*a, action, p)
		if err != nil {
			return err
		}
		err = r.Applications.UpdateFields(ctx, a.ID, []domain.Status{a.Status}, fields)
		switch {
		case errors.Is(err, domain.ErrStatusChanged):
			return apperr.Conflict("Application %s was modified concurrently. Reload it and retry.", a.ID)
		case err != nil:
			return fmt.Errorf("update application: %w", err)
		}
		return nil
	})
	if err != nil {
		err = lookupErr(err, "Application", appID)
		u.record(appID, action, from, err)
		return nil, err
	}
	u.record(appID, action, from, nil)

	v, err := u.apps.GetWithJoins(ctx, appID)
	if err != nil {
		return nil, lookupErr(err, "Application", appID)
	}
	return toDTO(v), nil
}

func (u *Usecase) record(appID string, action domain.Action, from domain.Status, err error) {
	fields := []zap.Field{
		zap.String("application_id", appID),
		zap.String("action", string(action)),
		zap.String("from", string(from)),
	}
	switch {
	case err == nil:
		metrics.RecordTransition(string(action), metrics.OutcomeOK)
		u.log.Info("application transition", append(fields, zap.String("to", string(action.Target())))...)
	case apperr.IsValidation(err):
		metrics.RecordTransition(string(action), metrics.OutcomeInvalid)
		u.log.Warn("application transition rejected", append(fields, zap.Error(err))...)
	case apperr.IsNotFound(err):
		metrics.RecordTransition(string(action), metrics.OutcomeNotFound)
		u.log.Warn("application transition rejected", append(fields, zap.Error(err))...)
	case apperr.IsConflict(err):
		metrics.RecordTransition(string(action), metrics.OutcomeConflict)
		u.log.Warn("application transition rejected", append(fields, zap.Error(err))...)
	default:
		metrics.RecordTransition(string(action), metrics.OutcomeError)
		u.log.Error("application transition failed", append(fields, zap.Error(err))...)
	}
}
