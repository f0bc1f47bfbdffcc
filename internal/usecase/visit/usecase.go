package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-backend/internal/apperr"
	appDomain "rental-backend/internal/domain/application"
	"rental-backend/internal/domain/guard"
	"rental-backend/internal/domain/uow"
	domain "rental-backend/internal/domain/visit"
	"rental-backend/internal/infrastructure/logging"
	"rental-backend/internal/validation"
	"rental-backend/pkg/id"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Visits are scoped to an application; every operation re-checks that the
// parent exists, writes also lock it.
type Usecase struct {
	apps   appDomain.Repository
	visits domain.Repository
	uow    uow.UnitOfWork
	log    *zap.Logger
	now    func() time.Time
}

func NewUsecase(apps appDomain.Repository, visits domain.Repository, tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	return &Usecase{apps: apps, visits: visits, uow: tx, log: logging.OrNop(log), now: time.Now}
}

func lookupErr(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

var terminal = []string{
	string(appDomain.StatusRejected),
	string(appDomain.StatusWithdrawn),
	string(appDomain.StatusContractSigned),
}

func (u *Usecase) Schedule(ctx context.Context, appID string, in ScheduleInput) (*VisitDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	at, _ := validation.ParseDate(in.ScheduledAt)

	var out *domain.Visit
	err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.Application) error {
		if a.Status.Terminal() {
			return apperr.Conflict("Cannot schedule visit for application with status %q. Application must not be in %s status.",
				string(a.Status), guard.JoinQuoted(terminal))
		}
		v := &domain.Visit{
			ID:            id.New(),
			ApplicationID: a.ID,
			ScheduledAt:   at,
			Status:        domain.StatusScheduled,
			Notes:         in.Notes,
			CreatedAt:     u.now().UTC(),
		}
		if err := r.Visits.Create(ctx, v); err != nil {
			return fmt.Errorf("create visit: %w", err)
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, lookupErr(err, "Application", appID)
	}
	u.log.Info("visit scheduled", zap.String("application_id", appID), zap.String("visit_id", out.ID))
	return toDTO(out), nil
}

func (u *Usecase) List(ctx context.Context, appID string) ([]VisitDTO, error) {
	if _, err := u.apps.GetByID(ctx, appID); err != nil {
		return nil, lookupErr(err, "Application", appID)
	}
	rows, err := u.visits.ListByApplicationID(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	out := make([]VisitDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Complete(ctx context.Context, appID, visitID string, in CompleteInput) (*VisitDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	at, _ := validation.ParseDate(in.CompletedAt)
	return u.transition(ctx, appID, visitID, domain.ActionComplete, domain.Payload{At: at})
}

func (u *Usecase) Cancel(ctx context.Context, appID, visitID string, in CancelInput) (*VisitDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	at, _ := validation.ParseDate(in.CancelledAt)
	return u.transition(ctx, appID, visitID, domain.ActionCancel, domain.Payload{At: at, Reason: in.CancelledReason})
}

func (u *Usecase) MarkNoShow(ctx context.Context, appID, visitID string, in NoShowInput) (*VisitDTO, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	at, _ := validation.ParseDate(in.MarkedAt)
	return u.transition(ctx, appID, visitID, domain.ActionNoShow, domain.Payload{At: at})
}

func (u *Usecase) transition(ctx context.Context, appID, visitID string, action domain.Action, p domain.Payload) (*VisitDTO, error) {
	var out domain.Visit
	err := u.uow.WithinApplicationTx(ctx, appID, func(r uow.Repos, a *appDomain.Application) error {
		v, err := r.Visits.GetForApplication(ctx, a.ID, visitID)
		if err != nil {
			return lookupErr(err, "Visit", visitID)
		}
		next, fields, err := domain.Apply(*v, action, p)
		if err != nil {
			return err
		}
		err = r.Visits.UpdateFields(ctx, v.ID, v.Status, fields)
		switch {
		case errors.Is(err, domain.ErrStatusChanged):
			return apperr.Conflict("Visit %s was modified concurrently. Reload it and retry.", v.ID)
		case err != nil:
			return fmt.Errorf("update visit: %w", err)
		}
		out = next
		return nil
	})
	if err != nil {
		err = lookupErr(err, "Application", appID)
		u.log.Warn("visit transition rejected",
			zap.String("application_id", appID), zap.String("visit_id", visitID),
			zap.String("action", string(action)), zap.Error(err))
		return nil, err
	}
	u.log.Info("visit transition",
		zap.String("application_id", appID), zap.String("visit_id", visitID),
		zap.String("action", string(action)), zap.String("to", string(out.Status)))
	return toDTO(&out), nil
}
