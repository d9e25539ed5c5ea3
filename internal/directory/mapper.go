package directory

import "github.com/abijith/user-directory/internal/domain"

// ProfileResponse is the externally visible representation of a user.
// Timestamps are internal bookkeeping and are not exposed.
type ProfileResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Phone            string         `json:"phone,omitempty"`
	Enabled          bool           `json:"enabled"`
	Roles            []domain.Role  `json:"roles"`
	CustomAttributes map[string]any `json:"custom_attributes,omitempty"`
}

// PagedResponse is the envelope returned by the list operation.
type PagedResponse struct {
	Users         []ProfileResponse `json:"users"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int               `json:"total_elements"`
	TotalPages    int               `json:"total_pages"`
}

// ToProfileResponse converts a user entity to its external representation.
func ToProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Phone:            user.Phone,
		Enabled:          user.Enabled,
		Roles:            user.Roles,
		CustomAttributes: user.CustomAttributes,
	}
}

// ToProfileResponses maps a slice of entities preserving order.
func ToProfileResponses(users []domain.User) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(users))
	for i := range users {
		out = append(out, ToProfileResponse(&users[i]))
	}
	return out
}

// ToUser builds a user entity from create input. Only caller-owned fields are
// copied; id, enabled, roles, and timestamps are assigned by the service.
func ToUser(input CreateInput) *domain.User {
	return &domain.User{
		Email:            input.Email,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Phone:            input.Phone,
		CustomAttributes: input.CustomAttributes,
	}
}
