package directory

import (
	"context"

	"github.com/abijith/user-directory/internal/domain"
)

// Repository defines the interface for user profile persistence.
//
// GetByID and GetByEmail are enabled-filtered: they return ErrUserNotFound
// for records that exist but are disabled. GetByIDAny ignores the enabled
// flag and is used by reactivation, which expects a disabled target.
type Repository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error

	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDAny(ctx context.Context, id string) (*domain.User, error)

	ListEnabled(ctx context.Context, params ListParams) ([]domain.User, int, error)

	SearchFirstName(ctx context.Context, pattern string) ([]domain.User, error)
	SearchLastName(ctx context.Context, pattern string) ([]domain.User, error)
	SearchEmail(ctx context.Context, pattern string) ([]domain.User, error)
}

// ListParams holds pagination and sorting parameters for ListEnabled.
// SortBy is validated by the service against SortFields before it reaches
// the store.
type ListParams struct {
	Page   int
	Size   int
	SortBy string
}

// Offset returns the row offset for the requested page.
func (p ListParams) Offset() int {
	return p.Page * p.Size
}
