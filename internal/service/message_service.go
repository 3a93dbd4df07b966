package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"imacms/api/internal/models"
	"imacms/api/internal/store"
)

const leadSourceContactForm = "contact_form"

// MessageService owns the contact-form flow: store the message and, when the
// sender opted into the newsletter, record them as a lead exactly once.
type MessageService struct {
	messages store.Collection[models.Message]
	leads    store.Collection[models.Lead]
	log      zerolog.Logger
}

func NewMessageService(
	messages store.Collection[models.Message],
	leads store.Collection[models.Lead],
	log zerolog.Logger,
) *MessageService {
	return &MessageService{messages: messages, leads: leads, log: log}
}

type CreateMessageInput struct {
	Name                string
	Email               string
	Subject             *string
	Message             string
	SubscribeNewsletter bool
}

func (s *MessageService) Create(ctx context.Context, input CreateMessageInput) (models.Message, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	msg := models.Message{
		ID:                  uuid.NewString(),
		Name:                input.Name,
		Email:               input.Email,
		Subject:             input.Subject,
		Message:             input.Message,
		SubscribeNewsletter: input.SubscribeNewsletter,
		IsRead:              false,
		CreatedAt:           now,
	}

	if err := s.messages.Insert(ctx, msg); err != nil {
		return models.Message{}, err
	}

	// Lead creation is best-effort: a failure here must not undo the message.
	if input.SubscribeNewsletter {
		if err := s.upsertLead(ctx, input.Email, input.Name, now); err != nil {
			s.log.Warn().Err(err).Str("email", input.Email).Msg("lead upsert failed")
		}
	}

	return msg, nil
}

func (s *MessageService) upsertLead(ctx context.Context, email, name, now string) error {
	_, err := s.leads.Get(ctx, "email", email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return s.leads.Insert(ctx, models.Lead{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Source:    leadSourceContactForm,
		CreatedAt: now,
	})
}
