package mail

import (
	"context"
	"fmt"
	"strings"

	"foodhub/internal/config"

	gomail "github.com/wneessen/go-mail"
	"github.com/sirupsen/logrus"
)

// Mailer 发送账号相关的事务邮件。
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, code string) error
	SendPasswordResetEmail(ctx context.Context, to, resetURL string) error
}

// NewMailer 在 SMTP 配置完整时返回 SMTP 实现，否则退化为仅写日志的实现。
func NewMailer(cfg config.Config) (Mailer, error) {
	host := strings.TrimSpace(cfg.SMTPHost)
	from := strings.TrimSpace(cfg.SMTPFrom)
	if host == "" || from == "" {
		logrus.Warn("SMTP not configured, emails will be logged instead of sent")
		return &logMailer{}, nil
	}

	options := []gomail.Option{
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if username := strings.TrimSpace(cfg.SMTPUsername); username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(host, options...)
	if err != nil {
		return nil, fmt.Errorf("mail: create SMTP client: %w", err)
	}

	return &smtpMailer{client: client, from: from}, nil
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

func (m *smtpMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	subject := "Verify your email address"
	body := fmt.Sprintf(
		"Your verification code is: %s\n\nThe code expires in one minute. If you did not create an account, you can ignore this email.\n",
		code,
	)
	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) SendPasswordResetEmail(ctx context.Context, to, resetURL string) error {
	subject := "Reset your password"
	body := fmt.Sprintf(
		"We received a request to reset your password. Open the link below to choose a new one:\n\n%s\n\nThe link expires in 10 minutes. If you did not request a reset, you can ignore this email.\n",
		resetURL,
	)
	return m.send(ctx, to, subject, body)
}

func (m *smtpMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mail: set sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

// logMailer 把邮件内容写进日志，供本地开发环境使用。
type logMailer struct{}

func (m *logMailer) SendVerificationEmail(_ context.Context, to, code string) error {
	logrus.WithFields(logrus.Fields{"to": to, "code": code}).Info("verification email (log only)")
	return nil
}

func (m *logMailer) SendPasswordResetEmail(_ context.Context, to, resetURL string) error {
	logrus.WithFields(logrus.Fields{"to": to, "reset_url": resetURL}).Info("password reset email (log only)")
	return nil
}

var _ Mailer = (*smtpMailer)(nil)
var _ Mailer = (*logMailer)(nil)
