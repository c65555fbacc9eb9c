package email

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/funfacts/internal/config"
	mail "github.com/xhit/go-simple-mail/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NotificationService sends account emails to users.
type NotificationService struct {
	config    *config.EmailConfig
	serverURL string
	templates *template.Template
}

// Welcome contains the data rendered into the welcome email.
type Welcome struct {
	UserName  string
	UserEmail string
	ServerURL string
	Joined    time.Time
}

// New creates a new email notification service.
func New(cfg *config.EmailConfig, serverURL string) (*NotificationService, error) {
	t, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &NotificationService{
		config:    cfg,
		serverURL: serverURL,
		templates: t,
	}, nil
}

// Enabled reports whether emails are sent at all.
func (n *NotificationService) Enabled() bool {
	return n != nil && n.config != nil && n.config.Enabled
}

// SendWelcome greets a newly registered user.
func (n *NotificationService) SendWelcome(userName, userEmail string) error {
	if !n.Enabled() {
		log.Debug("Email notifications are disabled, skipping welcome mail")
		return nil
	}
	if userEmail == "" {
		log.Warn("User email is empty, skipping welcome mail", "user", userName)
		return nil
	}

	body, err := n.renderWelcome(Welcome{
		UserName:  userName,
		UserEmail: userEmail,
		ServerURL: n.serverURL,
		Joined:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return n.sendEmail(userEmail, "Welcome to Fun Facts", body)
}

func (n *NotificationService) renderWelcome(data Welcome) (string, error) {
	var buf bytes.Buffer
	if err := n.templates.ExecuteTemplate(&buf, "welcome.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *NotificationService) sendEmail(to, subject, body string) error {
	server := mail.NewSMTPClient()
	server.Host = n.config.SMTPHost
	server.Port = n.config.SMTPPort
	server.Username = n.config.Username
	server.Password = n.config.Password

	switch {
	case n.config.UseSSL:
		server.Encryption = mail.EncryptionSSLTLS
	case n.config.UseTLS:
		server.Encryption = mail.EncryptionSTARTTLS
	default:
		server.Encryption = mail.EncryptionNone
	}

	if n.config.InsecureSkipVerify {
		server.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	server.KeepAlive = false
	server.ConnectTimeout = 10 * time.Second
	server.SendTimeout = 10 * time.Second

	smtpClient, err := server.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() {
		if closeErr := smtpClient.Close(); closeErr != nil {
			log.Warn("Failed to close SMTP client", "error", closeErr)
		}
	}()

	fromName := n.config.FromName
	if fromName == "" {
		fromName = "Fun Facts"
	}

	email := mail.NewMSG()
	email.SetFrom(fmt.Sprintf("%s <%s>", fromName, n.config.FromEmail))
	email.AddTo(to)
	email.SetSubject(subject)
	email.SetBody(mail.TextHTML, body)
	if email.Error != nil {
		return fmt.Errorf("failed to build email: %w", email.Error)
	}

	if err := email.Send(smtpClient); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info("Email sent", "to", to, "subject", subject)
	return nil
}
