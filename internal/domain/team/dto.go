package team

import "github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"

type AddMemberRequest struct {
	UserID   string `json:"user_id"`
	JoinedAt string `json:"joined_at,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r AddMemberRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id must be a valid UUID"})
	}
	if r.JoinedAt != "" {
		if _, ok := validator.IsValidDate(r.JoinedAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "joined_at", Message: "joined_at must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TeamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToResponse(t Team) TeamResponse {
	return TeamResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}
