package notify

import (
	"context"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/qzterxm/HealthUp/internal/config"
)

type SMTPSender struct {
	host        string
	port        string
	username    string
	password    string
	senderName  string
	senderEmail string
	log         *zap.Logger
}

func NewSMTPSender(cfg *config.Config, log *zap.Logger) *SMTPSender {
	return &SMTPSender{
		host:        cfg.SMTPHost,
		port:        cfg.SMTPPort,
		username:    cfg.SMTPUsername,
		password:    cfg.SMTPPassword,
		senderName:  cfg.SenderName,
		senderEmail: cfg.SenderEmail,
		log:         log,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	addr := s.host + ":" + s.port
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := "From: " + s.senderName + " <" + s.senderEmail + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body

	if err := smtp.SendMail(addr, auth, s.senderEmail, []string{to}, []byte(msg)); err != nil {
		s.log.Error("smtp send failed", zap.String("host", s.host), zap.Error(err))
		return err
	}

	s.log.Debug("email sent", zap.String("host", s.host))
	return nil
}
