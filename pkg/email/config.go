package email

import (
	"fmt"
	"net/mail"
)

// Provider names accepted in Config.Provider.
const (
	ProviderSMTP     = "smtp"
	ProviderPostmark = "postmark"
	ProviderDev      = "dev"
)

// SMTP connection security modes.
const (
	SecurityTLS      = "tls"
	SecurityStartTLS = "starttls"
	SecurityNone     = "none"
)

// Config holds email delivery settings.
//
// User and Pass are the two required credentials: User is the sending
// account (also the From address) and Pass is its secret, the SMTP password
// or the Postmark server token.
type Config struct {
	Provider   string `env:"EMAIL_PROVIDER" envDefault:"smtp"`
	User       string `env:"EMAIL_USER,required,notEmpty"`
	Pass       string `env:"EMAIL_PASS,required,notEmpty"`
	SenderName string `env:"EMAIL_SENDER_NAME" envDefault:"Lucky Blinds Website"`

	SMTPHost     string `env:"EMAIL_SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"EMAIL_SMTP_PORT" envDefault:"465"`
	SMTPSecurity string `env:"EMAIL_SMTP_SECURITY" envDefault:"tls"`

	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"tmp/emails"`
}

// Validate checks the settings the selected provider depends on.
func (c Config) Validate() error {
	if c.User == "" {
		return fmt.Errorf("%w: EMAIL_USER is required", ErrInvalidConfig)
	}
	if c.Pass == "" {
		return fmt.Errorf("%w: EMAIL_PASS is required", ErrInvalidConfig)
	}

	switch c.Provider {
	case ProviderSMTP:
		if !ValidAddress(c.User) {
			return fmt.Errorf("%w: EMAIL_USER must be a valid email address", ErrInvalidConfig)
		}
		if c.SMTPHost == "" {
			return fmt.Errorf("%w: EMAIL_SMTP_HOST is required", ErrInvalidConfig)
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return fmt.Errorf("%w: EMAIL_SMTP_PORT %d is out of range", ErrInvalidConfig, c.SMTPPort)
		}
		switch c.SMTPSecurity {
		case SecurityTLS, SecurityStartTLS, SecurityNone:
		default:
			return fmt.Errorf("%w: unknown EMAIL_SMTP_SECURITY %q", ErrInvalidConfig, c.SMTPSecurity)
		}
	case ProviderPostmark:
		if !ValidAddress(c.User) {
			return fmt.Errorf("%w: EMAIL_USER must be a valid email address", ErrInvalidConfig)
		}
	case ProviderDev:
		if c.DevDir == "" {
			return fmt.Errorf("%w: EMAIL_DEV_DIR is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown EMAIL_PROVIDER %q", ErrInvalidConfig, c.Provider)
	}
	return nil
}

// From returns the formatted From header value.
func (c Config) From() string {
	addr := mail.Address{Name: c.SenderName, Address: c.User}
	return addr.String()
}

// New builds the sender for cfg.Provider.
func New(cfg Config) (EmailSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderPostmark:
		return NewPostmarkClient(cfg)
	case ProviderDev:
		return NewDevSender(cfg.DevDir), nil
	default:
		return NewSMTPSender(cfg)
	}
}

// MustNew is like New but panics on invalid configuration.
func MustNew(cfg Config) EmailSender {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}
