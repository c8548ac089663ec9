package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"

	"github.com/luckyblinds/site/pkg/email"
	"github.com/luckyblinds/site/pkg/email/templates"
	"github.com/luckyblinds/site/pkg/logger"
)

const (
	subjectPrefix = "New Contact Form Submission from "
	mailTag       = "contact-form"
)

// ErrMissingViews is returned by NewService when no email views are wired.
var ErrMissingViews = errors.New("contact: email views are required")

// Config holds the submission handler settings.
type Config struct {
	Recipient string `env:"CONTACT_RECIPIENT" envDefault:"contactluckyblinds@gmail.com"`
}

// MailParams is the data passed to the email views.
type MailParams struct {
	Name        string
	Phone       string
	Email       string
	Message     string
	SubmittedAt time.Time
}

// MailViews renders the notification bodies. Text may be nil.
type MailViews struct {
	HTML func(MailParams) templ.Component
	Text func(MailParams) templ.Component
}

// Service is the trusted submission boundary: it re-validates every request
// and dispatches exactly one notification email per accepted submission.
type Service struct {
	cfg    Config
	sender email.EmailSender
	views  MailViews
	schema *validator.Validate
	log    *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a Service.
func NewService(cfg Config, sender email.EmailSender, views MailViews, opts ...Option) (*Service, error) {
	if sender == nil {
		return nil, errors.Join(email.ErrInvalidConfig, errors.New("contact: sender is nil"))
	}
	if views.HTML == nil {
		return nil, ErrMissingViews
	}
	if !email.ValidAddress(cfg.Recipient) {
		return nil, errors.Join(email.ErrInvalidConfig, fmt.Errorf("contact: invalid recipient %q", cfg.Recipient))
	}

	s := &Service{
		cfg:    cfg,
		sender: sender,
		views:  views,
		schema: newSchema(),
		log:    logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("contact"))
	return s, nil
}

// Validate checks req against the server schema. Failures are returned as
// ValidationErrors.
func (s *Service) Validate(req Request) error {
	req = req.Normalize()
	if err := validateRequest(s.schema, req); err != nil {
		return err
	}
	// Check also rejects what the tags allow, such as an address whose
	// domain has no dot.
	if errs := Check(req); errs != nil {
		out := make(ValidationErrors, len(errs))
		for f, msg := range errs {
			out[string(f)] = msg
		}
		return out
	}
	return nil
}

// Submit validates req and sends the notification. It never returns an
// error; every failure becomes Failure(FailureMessage) and is logged.
func (s *Service) Submit(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "contact submission panicked",
				logger.Event("submit"),
				slog.Any("panic", r),
			)
			res = Failure(FailureMessage)
		}
	}()

	req = req.Normalize()
	if err := s.Validate(req); err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			names := make([]string, 0, len(verrs))
			for k := range verrs {
				names = append(names, k)
			}
			s.log.WarnContext(ctx, "contact submission rejected",
				logger.Event("validate"),
				logger.Fields(names...),
			)
			res = Failure(FailureMessage)
			res.Fields = verrs
			return res
		}
		s.log.ErrorContext(ctx, "contact submission validation error", logger.Error(err))
		return Failure(FailureMessage)
	}

	start := s.now()
	params, err := s.compose(ctx, req, start)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to render contact email",
			logger.Event("render"),
			logger.Error(err),
		)
		return Failure(FailureMessage)
	}

	if err := s.sender.SendEmail(ctx, params); err != nil {
		s.log.ErrorContext(ctx, "failed to send contact email",
			logger.Event("send"),
			logger.Error(err),
		)
		return Failure(FailureMessage)
	}

	s.log.InfoContext(ctx, "contact email sent",
		logger.Event("send"),
		logger.Duration(s.now().Sub(start)),
	)
	return Success()
}

func (s *Service) compose(ctx context.Context, req Request, at time.Time) (email.SendEmailParams, error) {
	mp := MailParams{
		Name:        req.Name,
		Phone:       FormatPhone(req.Phone),
		Email:       req.Email,
		Message:     req.Message,
		SubmittedAt: at,
	}

	var text templ.Component
	if s.views.Text != nil {
		text = s.views.Text(mp)
	}
	htmlBody, textBody, err := templates.RenderPair(ctx, s.views.HTML(mp), text)
	if err != nil {
		return email.SendEmailParams{}, err
	}

	return email.SendEmailParams{
		SendTo:   s.cfg.Recipient,
		ReplyTo:  req.Email,
		Subject:  subjectPrefix + req.Name,
		BodyHTML: htmlBody,
		BodyText: textBody,
		Tag:      mailTag,
	}, nil
}
