package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"stocktrack/core/article"
)

//--
// Error response payloads & renderers
//--

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText string `json:"status"`          // user-level status message
	AppCode    int64  `json:"code,omitempty"`  // application-specific error code
	ErrorText  string `json:"error,omitempty"` // application-level error message, for debugging
}

func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrNotFound(msg string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Resource not found.",
		ErrorText:      msg,
	}
}

func ErrConflict(msg string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusConflict,
		StatusText:     "Conflict.",
		ErrorText:      msg,
	}
}

func ErrPersistence(msg string) render.Renderer {
	return &ErrResponse{
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
		ErrorText:      msg,
	}
}

var ErrInternalServer = &ErrResponse{
	Err:            nil,
	HTTPStatusCode: http.StatusInternalServerError,
	StatusText:     "Internal server error.",
	ErrorText:      "An internal server error has occurred.",
}

// RenderErr maps service errors onto HTTP responses. Expected failures carry
// their own caller-safe message; anything unrecognized is logged and rendered
// as a generic internal error so storage details never leak.
func RenderErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr  article.ValidationError
		notFoundErr    article.NotFoundError
		conflictErr    article.ConflictError
		persistenceErr article.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		Render(w, r, ErrInvalidRequest(validationErr))
	case errors.As(err, &notFoundErr):
		Render(w, r, ErrNotFound(notFoundErr.Reason))
	case errors.As(err, &conflictErr):
		Render(w, r, ErrConflict(conflictErr.Reason))
	case errors.As(err, &persistenceErr):
		Render(w, r, ErrPersistence(persistenceErr.Reason))
	default:
		log.Err(err).Send()
		Render(w, r, ErrInternalServer)
	}
}
