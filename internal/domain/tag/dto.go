package tag

import (
	"github.com/CodyMacMLE/athletiq-backend-go/internal/pkg/validator"
)

type CreateTagRequest struct {
	Label string `json:"label"`
}

func (r CreateTagRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Label) {
		errs = append(errs, validator.ValidationError{Field: "label", Message: "label is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TagResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Label    string `json:"label"`
	IsActive bool   `json:"is_active"`
}

func ToResponse(t Tag) TagResponse {
	return TagResponse{
		ID:       t.ID,
		Token:    t.Token,
		Label:    t.Label,
		IsActive: t.IsActive,
	}
}
