package email

import (
	"context"
	"fmt"
	"html"

	"go.opentelemetry.io/otel/codes"

	"github.com/wicaksonoadi/edubell/internal/notification/entity"
	"github.com/wicaksonoadi/edubell/internal/pkg/config"
	"github.com/wicaksonoadi/edubell/internal/pkg/instrument"
	"github.com/wicaksonoadi/edubell/internal/pkg/mail"
)

// Directory resolves a user id to an email address.
type Directory interface {
	GetUserEmail(ctx context.Context, userID int64) (string, error)
}

type Mail struct {
	client    mail.Mail
	directory Directory
	cfg       config.Config
	ins       instrument.Instrumentation
}

func New(client mail.Mail, directory Directory, cfg config.Config, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, directory: directory, cfg: cfg, ins: ins}
}

func (m *Mail) SendEmail(ctx context.Context, userID int64, n entity.Notification) error {
	ctx, span := m.ins.Tracer("notification.outbound.email").Start(ctx, "SendEmail")
	defer span.End()

	addr, err := m.directory.GetUserEmail(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	msg := mail.Message{
		From:     m.cfg.GetString("modules.notification.email_from"),
		To:       []string{addr},
		Subject:  n.Title,
		TextBody: n.Message,
		HTMLBody: buildHTMLBody(n),
	}

	if err := m.client.Send(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func buildHTMLBody(n entity.Notification) string {
	body := fmt.Sprintf("<h2>%s</h2><p>%s</p>", html.EscapeString(n.Title), html.EscapeString(n.Message))
	if n.ActionURL != "" {
		body += fmt.Sprintf(`<p><a href=%q>Open in EduBell</a></p>`, n.ActionURL)
	}

	return body
}
