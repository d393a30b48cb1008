package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atinyakov/travelguide/internal/models"
	"github.com/atinyakov/travelguide/internal/validation"
)

func TestContactService_Send(t *testing.T) {
	tests := []struct {
		name       string
		in         ContactInput
		wantFields []string
	}{
		{
			name: "valid",
			in:   ContactInput{Name: "Ann", Email: "ann@example.com", Message: "When is the best season for Petra?"},
		},
		{
			name:       "bad email",
			in:         ContactInput{Name: "Ann", Email: "ann-at-example", Message: "Hi"},
			wantFields: []string{"email"},
		},
		{
			name:       "empty",
			in:         ContactInput{},
			wantFields: []string{"name", "email", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			repo := &mockContactRepo{
				CreateContactMessageFunc: func(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error) {
					called = true
					if msg.Email != tt.in.Email {
						t.Errorf("stored email = %q; want %q", msg.Email, tt.in.Email)
					}
					msg.ID = 1
					return &msg, nil
				},
			}
			svc := NewContactService(repo, validation.New())

			got, err := svc.Send(context.Background(), tt.in)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Send returned error: %v", err)
				}
				if got.ID != 1 || !called {
					t.Errorf("Send = %+v, called = %v", got, called)
				}
				return
			}

			var verrs validation.Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("Send error = %v; want validation.Errors", err)
			}
			if called {
				t.Error("repository must not be called for invalid input")
			}
			for _, f := range tt.wantFields {
				if !verrs.Has(f) {
					t.Errorf("missing error for field %q in %v", f, verrs)
				}
			}
		})
	}
}
