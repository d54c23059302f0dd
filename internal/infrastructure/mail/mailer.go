// Package mail 提供 share.Mailer 的實作：SMTP 寄送與開發用的日誌輸出
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/share"
)

// SMTPConfig SMTP 連線設定
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLS      bool
}

// SMTPMailer 透過 SMTP 伺服器寄送郵件
type SMTPMailer struct {
	client *gomail.Client
	from   string
	logger *zap.Logger
}

// NewSMTPMailer 建立 SMTP 客戶端，實際連線延後到寄信時
func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.TLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From, logger: logger}, nil
}

// Send 組合並寄出郵件
func (m *SMTPMailer) Send(ctx context.Context, msg share.Message) error {
	gm, err := buildMsg(m.from, msg)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, gm); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	m.logger.Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

func buildMsg(from string, msg share.Message) (*gomail.Msg, error) {
	gm := gomail.NewMsg()
	if err := gm.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := gm.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: %v", share.ErrInvalidRecipient, err)
	}
	gm.Subject(msg.Subject)
	gm.SetBodyString(gomail.TypeTextPlain, msg.Body)
	if msg.HTMLBody != "" {
		gm.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}
	return gm, nil
}

// LogMailer 不寄送郵件，只寫入日誌 (開發環境預設)
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg share.Message) error {
	m.logger.Info("mail not sent (log driver)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

var (
	_ share.Mailer = (*SMTPMailer)(nil)
	_ share.Mailer = (*LogMailer)(nil)
)
