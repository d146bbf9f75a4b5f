// Package notify emails sellers about checkout activity.
package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Dialer sends fully built messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends plain-text seller notifications over SMTP.
type Mailer struct {
	dialer Dialer
	from   string
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return NewMailerWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From)
}

func NewMailerWithDialer(d Dialer, from string) *Mailer {
	return &Mailer{dialer: d, from: from}
}

// CheckoutReturned tells the seller a buyer finished the hosted checkout.
// The mail does not claim the payment settled.
func (m *Mailer) CheckoutReturned(ctx context.Context, seller *domain.User, session *domain.CheckoutSession) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", seller.Email)
	msg.SetHeader("Subject", fmt.Sprintf("A buyer checked out %q", session.ProductTitle))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nA buyer completed checkout for %q (%s %s).\n"+
			"Funds arrive in your payout account once the payment processor confirms the charge.\n",
		seller.Name, session.ProductTitle, formatMinor(session.AmountMinor), session.Currency,
	))

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send checkout mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func formatMinor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
