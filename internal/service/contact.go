package service

import (
	"context"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/validation"
)

// ContactRepository stores contact form messages.
type ContactRepository interface {
	CreateContactMessage(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error)
}

// ContactInput is the body of a contact form submission.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

type ContactService struct {
	repo     ContactRepository
	validate *validation.Validator
}

func NewContactService(repo ContactRepository, v *validation.Validator) *ContactService {
	return &ContactService{repo: repo, validate: v}
}

// Send validates and stores a contact message.
func (s *ContactService) Send(ctx context.Context, in ContactInput) (*models.ContactMessage, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	return s.repo.CreateContactMessage(ctx, models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	})
}
