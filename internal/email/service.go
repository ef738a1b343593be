package email

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Sender is what services depend on to send transactional email.
type Sender interface {
	Send(ctx context.Context, templateName, to string, data map[string]interface{}) bool
}

// Service renders named templates and delivers them. Delivery failures
// are logged and reported as false, never returned.
type Service struct {
	mailer Mailer
	from   string
	log    *zap.Logger
}

// NewService creates a Service.
func NewService(mailer Mailer, from string, log *zap.Logger) *Service {
	return &Service{mailer: mailer, from: from, log: log}
}

// Send renders templateName with data and delivers it to to.
func (s *Service) Send(ctx context.Context, templateName, to string, data map[string]interface{}) bool {
	msg, err := s.render(templateName, to, data)
	if err != nil {
		s.log.Error("failed to render email", zap.String("template", templateName), zap.Error(err))
		return false
	}

	if err := s.mailer.Deliver(ctx, msg); err != nil {
		s.log.Warn("failed to send email",
			zap.String("template", templateName),
			zap.String("to", to),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (s *Service) render(templateName, to string, data map[string]interface{}) (Message, error) {
	tmpl, ok := templates[templateName]
	if !ok {
		return Message{}, fmt.Errorf("unknown email template %q", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("execute %s: %w", templateName, err)
	}

	return Message{
		From:    s.from,
		To:      to,
		Subject: tmpl.subject,
		HTML:    buf.String(),
	}, nil
}
