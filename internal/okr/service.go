package okr

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okrhub/okrhub-lambda/internal/apperror"
	"github.com/okrhub/okrhub-lambda/internal/config"
	"github.com/okrhub/okrhub-lambda/internal/notifier"
	"github.com/okrhub/okrhub-lambda/internal/user"
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateOKRDTO) (*OKRResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]OKRResponse, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*OKRResponse, error)
	Update(ctx context.Context, id, userID uuid.UUID, dto UpdateOKRDTO) (*OKRResponse, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	users    user.UserRepository
	notifier notifier.Notifier
}

func NewService(repo Repository, users user.UserRepository, n notifier.Notifier) Service {
	return &service{
		repo:     repo,
		users:    users,
		notifier: n,
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateOKRDTO) (*OKRResponse, error) {
	if err := validateCreate(dto); err != nil {
		return nil, err
	}

	// Status and progress are forced on create regardless of caller input.
	o := OKR{
		UserID:      userID,
		Title:       dto.Title,
		Description: dto.Description,
		Objective:   dto.Objective,
		Quarter:     dto.Quarter,
		Year:        dto.Year,
		Status:      StatusActive,
		Progress:    0,
		KeyResults:  toKeyResults(dto.KeyResults),
	}

	if err := s.repo.Create(&o); err != nil {
		return nil, apperror.Store("insert", err)
	}

	s.notifyAsync(userID, o.Title, notifier.ActionCreated)

	return s.toResponse(&o), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]OKRResponse, error) {
	okrs, err := s.repo.FindAllByUserID(userID)
	if err != nil {
		return nil, apperror.Store("list", err)
	}

	responses := make([]OKRResponse, 0, len(okrs))
	for i := range okrs {
		responses = append(responses, *s.toResponse(&okrs[i]))
	}
	return responses, nil
}

func (s *service) Get(ctx context.Context, id, userID uuid.UUID) (*OKRResponse, error) {
	o, err := s.repo.FindByIDAndUserID(id, userID)
	if err != nil {
		return nil, apperror.Store("get", err)
	}
	if o == nil {
		return nil, apperror.ErrNotFound
	}
	return s.toResponse(o), nil
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, dto UpdateOKRDTO) (*OKRResponse, error) {
	if err := validateUpdate(dto); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByIDAndUserID(id, userID)
	if err != nil {
		return nil, apperror.Store("get", err)
	}
	if o == nil {
		return nil, apperror.ErrNotFound
	}

	o.Title = dto.Title
	o.Description = dto.Description
	o.Objective = dto.Objective
	o.Quarter = dto.Quarter
	o.Year = dto.Year
	o.Status = dto.Status
	o.Progress = dto.Progress
	o.KeyResults = toKeyResults(dto.KeyResults)

	if err := s.repo.Update(o); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Store("update", err)
	}

	updated, err := s.repo.FindByIDAndUserID(id, userID)
	if err != nil || updated == nil {
		// The write went through; fall back to the in-memory row if the
		// re-read fails.
		updated = o
	}

	s.notifyAsync(userID, updated.Title, notifier.ActionUpdated)

	return s.toResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return apperror.Store("delete", err)
	}
	// No notification on delete; only create and update trigger email.
	return nil
}

// notifyAsync dispatches the change notification on a detached goroutine.
// The outcome is observed only through logs; it never affects the result of
// the operation that triggered it.
func (s *service) notifyAsync(userID uuid.UUID, title string, action notifier.Action) {
	go func() {
		ctx := context.Background()
		log := config.WithContext(ctx)

		owner, err := s.users.GetByID(userID.String())
		if err != nil {
			log.WithError(err).Warnf("Skipping %s notification: owner lookup failed", action)
			return
		}
		if owner == nil {
			log.Warnf("Skipping %s notification: owner %s not found", action, userID)
			return
		}

		// Notify logs its own failure; nothing else to do with it here.
		_ = s.notifier.Notify(ctx, owner.Email, title, action)
	}()
}

func (s *service) toResponse(o *OKR) *OKRResponse {
	keyResults := make([]KeyResultDTO, 0, len(o.KeyResults))
	for _, kr := range o.KeyResults {
		keyResults = append(keyResults, KeyResultDTO(kr))
	}

	return &OKRResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Objective:   o.Objective,
		Quarter:     o.Quarter,
		Year:        o.Year,
		Status:      o.Status,
		Progress:    o.Progress,
		KeyResults:  keyResults,
		UserID:      o.UserID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
