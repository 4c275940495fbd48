// Package mailer sends transactional email through the Resend HTTP API.
// Every send is best-effort: failures are logged and swallowed, since email
// is never on a request's critical path.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/reservaon/api/internal/config"
	"go.uber.org/zap"
)

const apiURL = "https://api.resend.com/emails"

type Mailer struct {
	apiKey      string
	from        string
	frontendURL string
	client      *http.Client
	logger      *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		apiKey:      cfg.Mail.APIKey,
		from:        cfg.Mail.From,
		frontendURL: cfg.App.FrontendURL,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

type message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendWelcomeEmail greets a freshly registered owner.
func (m *Mailer) SendWelcomeEmail(ctx context.Context, email, name string) {
	html := fmt.Sprintf(`<div style="font-family: sans-serif; color: #333;">
		<h1>Olá, %s!</h1>
		<p>Estamos muito felizes em ter você conosco.</p>
		<p>Sua conta foi criada com sucesso e você já pode começar a configurar sua agenda.</p>
		<br>
		<a href="%s/login">Acessar Painel</a>
	</div>`, name, m.frontendURL)

	m.send(ctx, email, "Bem-vindo ao ReservaON! 🚀", html)
}

// SendBookingNotification tells the owner about a new public booking.
func (m *Mailer) SendBookingNotification(ctx context.Context, ownerEmail, clientName, serviceName string, date time.Time) {
	html := fmt.Sprintf(`<div style="font-family: sans-serif; color: #333;">
		<h2>Você tem um novo cliente!</h2>
		<p><strong>Cliente:</strong> %s</p>
		<p><strong>Serviço:</strong> %s</p>
		<p><strong>Data:</strong> %s</p>
		<br>
		<p>Acesse seu painel para ver mais detalhes.</p>
	</div>`, clientName, serviceName, date.Format("02/01/2006 15:04"))

	m.send(ctx, ownerEmail, fmt.Sprintf("📅 Novo Agendamento: %s", clientName), html)
}

// SendPasswordResetEmail delivers the recovery link. The token expires in one
// hour on the server side.
func (m *Mailer) SendPasswordResetEmail(ctx context.Context, email, token string) {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)
	html := fmt.Sprintf(`<div style="font-family: sans-serif; color: #333;">
		<h2>Esqueceu sua senha?</h2>
		<p>Clique no link abaixo para criar uma nova senha:</p>
		<br>
		<a href="%s">Redefinir Senha</a>
		<br><br>
		<p style="font-size: 0.9rem; color: #666;">Este link expira em 1 hora.</p>
	</div>`, resetLink)

	m.send(ctx, email, "Recuperação de Senha 🔒", html)
}

func (m *Mailer) send(ctx context.Context, to, subject, html string) {
	if m.apiKey == "" {
		m.logger.Debug("mailer disabled, skipping email", zap.String("subject", subject))
		return
	}

	body, err := json.Marshal(message{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		m.logger.Warn("failed to encode email", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		m.logger.Warn("failed to build email request", zap.Error(err))
		return
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Warn("failed to send email", zap.String("to", to), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		m.logger.Warn("email provider rejected message",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode))
	}
}
