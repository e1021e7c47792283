package mail

import (
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/config"
)

// Sender delivers notification mail. Delivery is best-effort; callers
// must never let a send failure roll back a committed state change.
type Sender interface {
	Send(receivers []string, subject, body string) error
}

type smtpSender struct {
	dialer         *gomail.Dialer
	senderAddress  string
	senderName     string
	retryCount     int
	retryBackoffMs int
	logger         *zap.Logger
}

// NewSender builds an SMTP-backed sender with bounded retry.
func NewSender(cfg config.MailConfig, logger *zap.Logger) Sender {
	if !cfg.Enabled {
		logger.Warn("mail disabled; notifications will be dropped")
		return NopSender{}
	}

	retryCount := cfg.RetryCount
	if retryCount <= 0 {
		retryCount = 3
	}
	retryBackoffMs := cfg.RetryBackoffMs
	if retryBackoffMs <= 0 {
		retryBackoffMs = 100
	}

	return &smtpSender{
		dialer:         gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		senderAddress:  cfg.SenderAddress,
		senderName:     cfg.SenderName,
		retryCount:     retryCount,
		retryBackoffMs: retryBackoffMs,
		logger:         logger,
	}
}

func (s *smtpSender) Send(receivers []string, subject, body string) error {
	if len(receivers) == 0 {
		return nil
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.senderAddress, s.senderName)
	msg.SetHeader("Bcc", receivers...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	var lastErr error
	backoffMs := s.retryBackoffMs

	for attempt := 0; attempt <= s.retryCount; attempt++ {
		err := s.dialer.DialAndSend(msg)
		if err == nil {
			s.logger.Debug("mail sent",
				zap.String("subject", subject),
				zap.Int("receivers", len(receivers)),
				zap.Int("attempt", attempt+1))
			return nil
		}
		lastErr = err
		if attempt < s.retryCount {
			time.Sleep(time.Duration(backoffMs) * time.Millisecond)
			backoffMs = min(backoffMs*2, 32000)
		}
	}

	s.logger.Warn("mail send failed",
		zap.String("subject", subject),
		zap.Int("attempts", s.retryCount+1),
		zap.Error(lastErr))
	return lastErr
}

// NopSender drops every message. Used when mail is disabled.
type NopSender struct{}

func (NopSender) Send([]string, string, string) error { return nil }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
