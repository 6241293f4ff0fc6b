// Package service implements the applicant note ledger: an append-only
// trail of staff and system commentary per applicant. Notes are never
// edited or removed individually; the trail only goes away when its
// applicant is deleted.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"shoptrack/internal/applicant"
	notemetrics "shoptrack/internal/note/metrics"
	"shoptrack/internal/note/models"
	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
	"shoptrack/pkg/platform/sentinel"
	"shoptrack/pkg/requestcontext"
)

// Store is the ledger persistence the note service reads and appends
// through.
type Store interface {
	Append(ctx context.Context, note *models.Note) error
	ListByApplicant(ctx context.Context, applicantID id.ApplicantID) ([]models.Note, error)
}

// TenantResolver maps the authenticated caller to its shop.
type TenantResolver interface {
	ShopID(ctx context.Context) (id.ShopID, error)
}

// Service guards ledger access behind the caller's tenant: every
// operation first proves the applicant exists in the caller's shop,
// so a cross-tenant trail is indistinguishable from a missing one.
type Service struct {
	notes      Store
	applicants applicant.Store
	resolver   TenantResolver
	logger     *slog.Logger
	metrics    *notemetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *notemetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(notes Store, applicants applicant.Store, resolver TenantResolver, opts ...Option) *Service {
	s := &Service{
		notes:      notes,
		applicants: applicants,
		resolver:   resolver,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendRequest carries a staff-authored note after transport decoding.
type AppendRequest struct {
	Message string
	AddedBy string
}

// List returns the applicant's trail, newest first.
func (s *Service) List(ctx context.Context, applicantID id.ApplicantID) ([]models.Note, error) {
	if err := s.checkApplicant(ctx, applicantID); err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notes")
	}
	return notes, nil
}

// Append records a staff note against the applicant. Attribution
// defaults to the caller's email when the request names no author.
func (s *Service) Append(ctx context.Context, applicantID id.ApplicantID, req AppendRequest) (*models.Note, error) {
	if err := s.checkApplicant(ctx, applicantID); err != nil {
		return nil, err
	}

	addedBy := strings.TrimSpace(req.AddedBy)
	if addedBy == "" {
		addedBy = authorName(ctx)
	}

	note, err := models.NewNote(
		id.NewNoteID(), applicantID,
		addedBy, requestcontext.UserID(ctx),
		req.Message, requestcontext.Now(ctx),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid note")
	}

	if err := s.notes.Append(ctx, note); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append note")
	}

	s.logger.InfoContext(ctx, "note appended",
		"request_id", requestcontext.RequestID(ctx),
		"applicant_id", note.ApplicantID,
		"note_id", note.ID,
	)
	if s.metrics != nil {
		s.metrics.IncrementAppended()
	}
	return note, nil
}

// checkApplicant resolves the caller's tenant and proves the applicant
// belongs to it.
func (s *Service) checkApplicant(ctx context.Context, applicantID id.ApplicantID) error {
	shopID, err := s.resolver.ShopID(ctx)
	if err != nil {
		return err
	}

	if _, err := s.applicants.ForShop(shopID).Get(ctx, applicantID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Applicant not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load applicant")
	}
	return nil
}

func authorName(ctx context.Context) string {
	if email := requestcontext.Email(ctx); email != "" {
		return email
	}
	return "Unknown"
}
