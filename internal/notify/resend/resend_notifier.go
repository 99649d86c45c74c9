package resend

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Notifier delivers milestone notifications as email via Resend.
type Notifier struct {
	APIKey string
	From   string
	Email  string
}

func (n *Notifier) Notify(title, body string) error {
	client := resend.NewClient(n.APIKey)
	params := &resend.SendEmailRequest{
		From:    n.From,
		To:      []string{n.Email},
		Subject: title,
		Html:    fmt.Sprintf("<p>%s</p>", body),
	}
	_, err := client.Emails.Send(params)
	return err
}
