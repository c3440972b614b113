package remind

import (
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendNotifier delivers reminders by e-mail through resend.com.
type ResendNotifier struct {
	APIKey string
	From   string
	Email  string
}

func (r *ResendNotifier) SendReminder(habits []string, message string) error {
	from := r.From
	if from == "" {
		from = "habitd <onboarding@resend.dev>"
	}

	var items strings.Builder
	for _, h := range habits {
		fmt.Fprintf(&items, "<li>%s</li>", h)
	}

	client := resend.NewClient(r.APIKey)
	_, err := client.Emails.Send(&resend.SendEmailRequest{
		From:    from,
		To:      []string{r.Email},
		Subject: fmt.Sprintf("Don't break the chain: %d habit(s) left today", len(habits)),
		Html:    fmt.Sprintf("<p>%s</p><ul>%s</ul>", message, items.String()),
	})
	return err
}

var _ Notifier = (*ResendNotifier)(nil)
