package utils

import (
	"fmt"
	"strings"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
	log "github.com/sirupsen/logrus"
)

// Mailer sends transactional mail through Mailjet. With no API keys
// configured it degrades to logging the message, which keeps local
// development and tests offline.
type Mailer struct {
	apiKey    string
	secretKey string
	fromEmail string
	fromName  string
}

func NewMailer(apiKey, secretKey, fromEmail, fromName string) *Mailer {
	return &Mailer{
		apiKey:    apiKey,
		secretKey: secretKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *Mailer) configured() bool {
	return m.apiKey != "" && m.secretKey != ""
}

// SendPasswordReset mails the reset link. The token embedded in resetURL is
// valid for ten minutes.
func (m *Mailer) SendPasswordReset(toEmail, toName, resetURL string) error {
	subject := "Your password reset token valid for 10 mins"
	htmlPart := fmt.Sprintf(
		`<p>Forgot your password? Submit a PATCH request with your new password and passwordConfirm. Click the button to reset password page.: <a href="%s" style="display:inline-block;margin:10px;padding:10px;background-color:rgb(65,60,60,0.5);border-radius:5px;text-decoration:none;color:white;font-size:20px">Reset Password.</a></p>`,
		resetURL,
	)

	if !m.configured() {
		log.WithFields(log.Fields{"to": toEmail, "url": resetURL}).Info("[MOCK EMAIL] password reset")
		return nil
	}

	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: m.fromEmail,
					Name:  m.fromName,
				},
				To: &mailjet.RecipientsV31{
					mailjet.RecipientV31{
						Email: toEmail,
						Name:  strings.TrimSpace(toName),
					},
				},
				Subject:  subject,
				HTMLPart: htmlPart,
			},
		},
	}

	client := mailjet.NewMailjetClient(m.apiKey, m.secretKey)
	if _, err := client.SendMailV31(&messages); err != nil {
		return fmt.Errorf("mailjet send: %w", err)
	}
	return nil
}
