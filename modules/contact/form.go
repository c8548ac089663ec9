package contact

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/luckyblinds/site/handler"
	"github.com/luckyblinds/site/pkg/logger"
	contactsvc "github.com/luckyblinds/site/svc/contact"
	"github.com/luckyblinds/site/svc/contact/form"
	"github.com/luckyblinds/site/views"
)

// DuplicateNotice is shown when the same form is posted again while the
// first submission is still being sent.
const DuplicateNotice = "Your request is already being sent. Please wait a moment."

// FormRequest is the posted form: the Datastar signal store or the plain
// form fields.
type FormRequest struct {
	FormID string `json:"formId" form:"form_id"`
	contactsvc.Request
}

func (s *Service) submitForm(ctx handler.Context, req FormRequest) handler.Response {
	formID := req.FormID
	if formID == "" {
		formID = uuid.NewString()
	}
	log := s.log.With(logger.RequestID(ctx.RequestID()), logger.FormID(formID))

	state, notice := s.run(ctx, log, formID, form.Restore(req.Request))

	p := views.NewContactFormParams(formID, state, notice, s.cfg.ServiceArea)
	return handler.TemplWithSignals(
		s.views.Form(p),
		s.views.Page(p),
		views.SignalsFor(formID, state),
		handler.WithTarget("#contact-form"),
	)
}

// run drives one submission of the restored form. The guard keeps a second
// post of the same form from sending another email while the first is
// pending.
func (s *Service) run(ctx context.Context, log *slog.Logger, formID string, state form.State) (form.State, string) {
	key := "contact:" + formID
	token, acquired, err := s.guard.Acquire(ctx, key, s.cfg.InFlightTTL)
	switch {
	case err != nil:
		// Without a working guard the form still goes out; duplicates are
		// possible until the store recovers.
		log.ErrorContext(ctx, "in-flight guard unavailable", logger.Error(err))
	case !acquired:
		log.WarnContext(ctx, "duplicate contact submission dropped", logger.Event("duplicate"))
		return state, DuplicateNotice
	default:
		defer func() {
			if err := s.guard.Release(context.WithoutCancel(ctx), key, token); err != nil {
				log.ErrorContext(ctx, "failed to release in-flight guard", logger.Error(err))
			}
		}()
	}

	f := form.NewForm(s.submitter, form.WithState(state), form.WithLogger(s.log))
	next, err := f.Submit(ctx)
	if err != nil {
		if errors.Is(err, form.ErrSubmitInFlight) {
			return next, DuplicateNotice
		}
		log.ErrorContext(ctx, "contact form rejected submit", logger.Error(err))
		return next, ""
	}

	switch next.Status {
	case form.StatusSubmitted:
		log.InfoContext(ctx, "contact form submitted", logger.Event("submitted"))
	case form.StatusEditingWithError:
		log.WarnContext(ctx, "contact form submission failed", logger.Event("failed"))
	default:
		log.InfoContext(ctx, "contact form has invalid fields", logger.Event("invalid"))
	}
	return next, ""
}
