package contact

import (
	"net/http"

	"github.com/luckyblinds/site/handler"
	"github.com/luckyblinds/site/pkg/logger"
	contactsvc "github.com/luckyblinds/site/svc/contact"
)

// submitAPI answers with the result envelope. The status tells callers
// apart without reading the body: 200 sent, 422 rejected fields, 502 the
// mail provider failed.
func (s *Service) submitAPI(ctx handler.Context, req contactsvc.Request) handler.Response {
	res := s.submitter.Submit(ctx, req)
	switch {
	case res.Success:
		return handler.JSON(res)
	case len(res.Fields) > 0:
		return handler.JSON(res, handler.WithJSONStatus(http.StatusUnprocessableEntity))
	default:
		return handler.JSON(res, handler.WithJSONStatus(http.StatusBadGateway))
	}
}

// apiError keeps malformed requests on the same envelope as every other
// outcome, so clients only ever decode a contact.Result.
func (s *Service) apiError(ctx handler.Context, err error) {
	info := handler.ClassifyError(err)
	s.log.LogAttrs(ctx, info.LogLevel, "contact api request rejected",
		logger.RequestID(ctx.RequestID()),
		logger.Error(err),
	)

	resp := handler.JSON(contactsvc.Failure(contactsvc.FailureMessage), handler.WithJSONStatus(info.StatusCode))
	if err := resp.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		s.log.ErrorContext(ctx, "failed to write contact api error", logger.Error(err))
	}
}
