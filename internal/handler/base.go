package handler

import (
	"time"

	"github.com/deppfellow/leadboard/internal/middleware"
	"github.com/deppfellow/leadboard/internal/model"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/deppfellow/leadboard/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared application dependencies.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Payload is a pointer to a request struct that can validate itself.
// Handle allocates a fresh Req for every request and binds into it.
type Payload[Req any] interface {
	*Req
	validation.Validatable
}

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler wraps the result in the data envelope.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, model.Envelope[any]{Success: true, Data: result})
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// MessageResponseHandler writes the message envelope. The result must be a
// string.
type MessageResponseHandler struct {
	status int
}

func (h MessageResponseHandler) Handle(c echo.Context, result any) error {
	message, _ := result.(string)
	return c.JSON(h.status, model.MessageEnvelope{Success: true, Message: message})
}

func (h MessageResponseHandler) GetOperation() string {
	return "handler_message"
}

func (h MessageResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn != nil {
		if message, ok := result.(string); ok {
			txn.AddAttribute("response.message", message)
		}
	}
}

type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) GetOperation() string {
	return "handler_no_content"
}

func (h NoContentResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// recordPhase tags the transaction with the outcome and duration of one
// request phase, e.g. validation.status and validation.duration_ms.
func recordPhase(txn *newrelic.Transaction, phase string, d time.Duration, err error) {
	if txn == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	txn.AddAttribute(phase+".status", status)
	txn.AddAttribute(phase+".duration_ms", d.Milliseconds())
}

// handleRequest binds and validates req, runs fn and renders its result.
// Errors are returned untouched for GlobalErrorHandler; EnhanceTracing
// notices them on the transaction.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	fn func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", c.Path())
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", c.Path()).
		Logger()

	bindStart := time.Now()
	err := validation.BindAndValidate(c, req)
	bindDuration := time.Since(bindStart)
	recordPhase(txn, "validation", bindDuration, err)
	if err != nil {
		logger.Debug().
			Err(err).
			Dur("validation_duration", bindDuration).
			Msg("request rejected by validation")
		return err
	}

	runStart := time.Now()
	result, err := fn(c, req)
	runDuration := time.Since(runStart)
	recordPhase(txn, "handler", runDuration, err)
	if err != nil {
		return err
	}

	if txn != nil {
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("validation_duration", bindDuration).
		Dur("handler_duration", runDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request handled")

	return responseHandler.Handle(c, result)
}

// Handle registers a typed endpoint whose result is written inside the
// data envelope with the given status.
func Handle[Req any, P Payload[Req], Res any](
	h Handler,
	fn func(c echo.Context, req P) (Res, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, P(new(Req)), func(c echo.Context, req P) (any, error) {
			return fn(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleMessage registers an endpoint that answers with a message envelope.
func HandleMessage[Req any, P Payload[Req]](
	h Handler,
	fn func(c echo.Context, req P) (string, error),
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, P(new(Req)), func(c echo.Context, req P) (any, error) {
			return fn(c, req)
		}, MessageResponseHandler{status: status})
	}
}

// HandleNoContent registers an endpoint that answers with an empty body.
func HandleNoContent[Req any, P Payload[Req]](
	h Handler,
	fn func(c echo.Context, req P) error,
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, P(new(Req)), func(c echo.Context, req P) (any, error) {
			return nil, fn(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
