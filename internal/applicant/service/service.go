package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"shoptrack/internal/applicant"
	applicantmetrics "shoptrack/internal/applicant/metrics"
	"shoptrack/internal/applicant/models"
	"shoptrack/internal/audit"
	"shoptrack/internal/constants"
	notemodels "shoptrack/internal/note/models"
	shopmodels "shoptrack/internal/shop/models"
	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
	"shoptrack/pkg/platform/sentinel"
	"shoptrack/pkg/platform/tx"
	"shoptrack/pkg/requestcontext"
)

// NoteStore is the slice of ledger persistence the applicant service
// writes through: the automatic status note and the delete cascade.
type NoteStore interface {
	Append(ctx context.Context, note *notemodels.Note) error
	DeleteByApplicant(ctx context.Context, applicantID id.ApplicantID) error
}

// ShopDirectory validates that an intake submission targets a real shop.
type ShopDirectory interface {
	GetByID(ctx context.Context, shopID id.ShopID) (*shopmodels.PublicShop, error)
}

// TenantResolver maps the authenticated caller to its shop.
type TenantResolver interface {
	ShopID(ctx context.Context) (id.ShopID, error)
}

// AuditPublisher emits applicant lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// SubmitRequest is the public intake payload after transport decoding.
type SubmitRequest struct {
	ShopID          id.ShopID
	FullName        string
	Email           string
	Phone           string
	PositionApplied string
	Source          string
	FormData        map[string]any
}

// Service orchestrates the applicant lifecycle: public intake,
// tenant-scoped triage, the status pipeline, and its audit side
// effects.
type Service struct {
	store    applicant.Store
	notes    NoteStore
	shops    ShopDirectory
	resolver TenantResolver
	catalog  *constants.Catalog
	tx       tx.Runner
	logger   *slog.Logger
	auditor  AuditPublisher
	metrics  *applicantmetrics.Metrics
	tracer   trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *applicantmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithTxRunner sets the transaction runner coupling the status update
// to its audit note. Defaults to a passthrough for in-memory stores.
func WithTxRunner(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// New constructs a Service.
func New(store applicant.Store, notes NoteStore, shops ShopDirectory, resolver TenantResolver, catalog *constants.Catalog, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notes:    notes,
		shops:    shops,
		resolver: resolver,
		catalog:  catalog,
		tx:       tx.Passthrough{},
		logger:   slog.Default(),
		tracer:   otel.Tracer("shoptrack/internal/applicant"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit handles the public intake form. The applicant insert must
// succeed; the first ledger entry is best-effort and its failure is
// logged, never propagated. Applicant durability beats ledger
// completeness here.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.Applicant, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "applicant.Submit")
	defer span.End()

	shop, err := s.shops.GetByID(ctx, req.ShopID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	a, err := models.NewApplicant(
		id.NewApplicantID(), shop.ID,
		req.FullName, req.Email, req.Phone, req.PositionApplied, req.Source,
		constants.InitialStatus, req.FormData, requestcontext.Now(ctx),
	)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.store.Create(ctx, a); err != nil {
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create applicant")
	}
	span.SetAttributes(attribute.String("applicant.id", a.ID.String()))

	source := a.Source
	if source == "" {
		source = constants.DefaultSource
	}
	intakeNote := notemodels.NewSystemNote(
		id.NewNoteID(), a.ID, notemodels.IntakeMessage(source), requestcontext.Now(ctx),
	)
	if err := s.notes.Append(ctx, intakeNote); err != nil {
		// Sanctioned swallow: the applicant row stands even when the
		// ledger write fails.
		s.logger.ErrorContext(ctx, "intake note append failed",
			"applicant_id", a.ID,
			"shop_id", a.ShopID,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.metrics != nil {
			s.metrics.IncrementIntakeNoteFailure()
		}
	}

	s.logger.InfoContext(ctx, "applicant submitted",
		"applicant_id", a.ID,
		"shop_id", a.ShopID,
		"position", a.PositionApplied,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Action:      audit.ActionApplicantCreated,
			ShopID:      a.ShopID,
			ApplicantID: a.ID,
			Detail:      a.PositionApplied,
		})
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
		s.metrics.ObserveSubmit(start)
	}
	return a, nil
}

// List returns the caller's tenant-scoped triage view, newest first.
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]models.Summary, error) {
	shopID, err := s.resolver.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !s.catalog.ValidStatus(filter.Status) {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("Invalid status %q", filter.Status))
	}

	out, err := s.store.ForShop(shopID).List(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applicants")
	}
	return out, nil
}

// Get returns one full applicant record within the caller's tenant.
func (s *Service) Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error) {
	shopID, err := s.resolver.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.store.ForShop(shopID).Get(ctx, applicantID)
	if err != nil {
		return nil, wrapApplicantErr(err)
	}
	return a, nil
}

// Update applies a partial mutation. When the status changes, the audit
// note commits in the same transaction: the caller never observes the
// new status without its ledger entry.
func (s *Service) Update(ctx context.Context, applicantID id.ApplicantID, patch models.Update) (*models.Applicant, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "applicant.Update")
	defer span.End()

	shopID, err := s.resolver.ShopID(ctx)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil && !s.catalog.ValidStatus(*patch.Status) {
		return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("Invalid status %q", *patch.Status))
	}

	scoped := s.store.ForShop(shopID)
	var (
		updated       *models.Applicant
		statusChanged bool
		oldStatus     string
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := scoped.Get(txCtx, applicantID)
		if err != nil {
			return wrapApplicantErr(err)
		}

		statusChanged, oldStatus = a.Apply(patch, requestcontext.Now(txCtx))
		if err := scoped.Update(txCtx, a, patch); err != nil {
			return wrapApplicantErr(err)
		}

		if statusChanged {
			note, err := notemodels.NewNote(
				id.NewNoteID(), a.ID,
				authorName(txCtx), requestcontext.UserID(txCtx),
				notemodels.StatusChangeMessage(oldStatus, a.Status),
				requestcontext.Now(txCtx),
			)
			if err != nil {
				return err
			}
			if err := s.notes.Append(txCtx, note); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append status note")
			}
		}

		updated = a
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if statusChanged {
		span.SetAttributes(
			attribute.String("status.from", oldStatus),
			attribute.String("status.to", updated.Status),
		)
		s.logger.InfoContext(ctx, "applicant status changed",
			"applicant_id", updated.ID,
			"shop_id", shopID,
			"from", oldStatus,
			"to", updated.Status,
			"request_id", requestcontext.RequestID(ctx),
		)
		if s.auditor != nil {
			s.auditor.Emit(ctx, audit.Event{
				Action:      audit.ActionApplicantStatusChanged,
				ShopID:      shopID,
				ApplicantID: updated.ID,
				Actor:       requestcontext.Email(ctx),
				Detail:      notemodels.StatusChangeMessage(oldStatus, updated.Status),
			})
		}
		if s.metrics != nil {
			s.metrics.IncrementTransition(updated.Status)
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveUpdate(start)
	}
	return updated, nil
}

// Delete hard-deletes an applicant and its whole ledger trail.
func (s *Service) Delete(ctx context.Context, applicantID id.ApplicantID) error {
	shopID, err := s.resolver.ShopID(ctx)
	if err != nil {
		return err
	}

	scoped := s.store.ForShop(shopID)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Delete the applicant first: the scoped delete proves the caller's
		// shop owns the row, so a cross-tenant call fails before the ledger
		// is touched.
		if err := scoped.Delete(txCtx, applicantID); err != nil {
			return wrapApplicantErr(err)
		}
		if err := s.notes.DeleteByApplicant(txCtx, applicantID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete notes")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "applicant deleted",
		"applicant_id", applicantID,
		"shop_id", shopID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Action:      audit.ActionApplicantDeleted,
			ShopID:      shopID,
			ApplicantID: applicantID,
			Actor:       requestcontext.Email(ctx),
		})
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	return nil
}

func authorName(ctx context.Context) string {
	if email := requestcontext.Email(ctx); email != "" {
		return email
	}
	return "Unknown"
}

func wrapApplicantErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Applicant not found")
	}
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "applicant store failure")
}
