package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/petcare-service/internal/domain"
	"github.com/spec-kit/petcare-service/internal/events"
	"github.com/spec-kit/petcare-service/internal/repository"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

const maxContactMessageLength = 2000

// ContactInput is a contact form submission.
type ContactInput struct {
	Nombre  string
	Email   string
	Mensaje string
}

// ContactService stores contact form submissions.
type ContactService struct {
	messages   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService constructs the service.
func NewContactService(messages repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{messages: messages, dispatcher: dispatcher, logger: logger}
}

// Submit validates and stores a message.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.TrimSpace(in.Email)
	in.Mensaje = strings.TrimSpace(in.Mensaje)

	errs := fieldErrors{}
	errs.required("nombre", in.Nombre)
	errs.required("email", in.Email)
	errs.required("mensaje", in.Mensaje)
	errs.email("email", in.Email)
	if utf8.RuneCountInString(in.Mensaje) > maxContactMessageLength {
		errs["mensaje"] = "too long"
	}
	if err := errs.err("invalid contact message"); err != nil {
		return nil, err
	}

	msg := &domain.ContactMessage{Nombre: in.Nombre, Email: in.Email, Mensaje: in.Mensaje}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		event := events.NewEvent(events.EventContactReceived, msg.Email, events.ContactReceivedPayload{
			MessageID: msg.ID,
			Email:     msg.Email,
			Preview:   preview(msg.Mensaje, 80),
		})
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		}
	}
	return msg, nil
}

// List returns every stored message, newest first.
func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return msgs, nil
}

func preview(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "…"
}
