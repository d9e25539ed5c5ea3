// Package directory provides the business logic and HTTP handlers for
// managing user profiles.
package directory

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/abijith/user-directory/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// SortFields are the entity fields the list operation may sort by.
var SortFields = map[string]bool{
	"email":      true,
	"first_name": true,
	"last_name":  true,
	"created_at": true,
}

// Service implements user directory business logic. It is the sole writer of
// policy-derived fields: timestamps, the default role, and the enabled flag.
type Service struct {
	repo Repository
}

// NewService creates a new directory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds data for creating a user profile.
type CreateInput struct {
	Email            string
	FirstName        string
	LastName         string
	Phone            string
	CustomAttributes map[string]any
}

// UpdateInput holds the mutable profile fields. Email, roles, and the
// enabled flag are never changed by an update.
type UpdateInput struct {
	FirstName        string
	LastName         string
	Phone            string
	CustomAttributes map[string]any
}

// NormalizeEmail canonicalizes an email address for storage and lookup:
// Unicode NFC, trimmed, lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(email)))
}

// GetByID returns the profile for an enabled user.
func (s *Service) GetByID(ctx context.Context, id string) (ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ProfileResponse{}, err
	}
	return ToProfileResponse(user), nil
}

// GetByEmail returns the profile for an enabled user looked up by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (ProfileResponse, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return ProfileResponse{}, err
	}
	return ToProfileResponse(user), nil
}

// Create creates a new enabled user profile and returns the generated id.
// Fails with ErrEmailExists when an enabled user already holds the email.
//
// The pre-check and the insert are not atomic; two concurrent creates with
// the same email can both pass the check. The partial unique index on
// enabled emails is the backstop, surfaced by the repository as
// ErrEmailExists.
func (s *Service) Create(ctx context.Context, input CreateInput) (string, error) {
	input.Email = NormalizeEmail(input.Email)

	_, err := s.repo.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrEmailExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("check email uniqueness: %w", err)
	}

	user := ToUser(input)
	now := time.Now().UTC()
	user.Enabled = true
	user.Roles = []domain.Role{domain.RoleUser}
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Update overwrites the mutable fields of an enabled user.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Phone = input.Phone
	user.CustomAttributes = input.CustomAttributes
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// Deactivate soft-deletes an enabled user. A second call on the same id
// fails with ErrUserNotFound since the record is no longer visible to the
// enabled-filtered lookup; that is the intended "already deactivated" signal.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.Enabled = false
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// Reactivate re-enables a user. The lookup is unfiltered since the target is
// expected to be disabled; reactivating an already-enabled user succeeds.
func (s *Service) Reactivate(ctx context.Context, id string) error {
	user, err := s.repo.GetByIDAny(ctx, id)
	if err != nil {
		return err
	}

	user.Enabled = true
	user.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, user)
}

// List returns a page of enabled users ordered ascending by params.SortBy.
func (s *Service) List(ctx context.Context, params ListParams) (PagedResponse, error) {
	if params.Page < 0 {
		return PagedResponse{}, ErrInvalidPage
	}
	if params.Size < 1 {
		return PagedResponse{}, ErrInvalidPageSize
	}
	if !SortFields[params.SortBy] {
		return PagedResponse{}, fmt.Errorf("%w: %s", ErrInvalidSortBy, params.SortBy)
	}

	users, total, err := s.repo.ListEnabled(ctx, params)
	if err != nil {
		return PagedResponse{}, err
	}

	return PagedResponse{
		Users:         ToProfileResponses(users),
		Page:          params.Page,
		Size:          params.Size,
		TotalElements: total,
		TotalPages:    (total + params.Size - 1) / params.Size,
	}, nil
}

// Search performs a case-insensitive substring match against first name,
// last name, and email independently, then unions the three result sets,
// de-duplicating by id. An empty term matches every enabled user; that is
// intended behavior.
func (s *Service) Search(ctx context.Context, term string) ([]ProfileResponse, error) {
	pattern := regexp.QuoteMeta(term)

	probes := []func(context.Context, string) ([]domain.User, error){
		s.repo.SearchFirstName,
		s.repo.SearchLastName,
		s.repo.SearchEmail,
	}

	seen := make(map[string]bool)
	var matches []domain.User
	for _, probe := range probes {
		users, err := probe(ctx, pattern)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if seen[u.ID] {
				continue
			}
			seen[u.ID] = true
			matches = append(matches, u)
		}
	}

	return ToProfileResponses(matches), nil
}
