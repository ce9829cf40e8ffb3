package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
	"github.com/mohammedmirzada/order-tracking/pkg/resp"
	"github.com/mohammedmirzada/order-tracking/services"
)

// EventPublisher receives successful mutations, e.g. ("order.created", id, order).
type EventPublisher interface {
	Publish(eventType, id string, data any)
}

type discardEvents struct{}

func (discardEvents) Publish(string, string, any) {}

func publisherOrDiscard(p EventPublisher) EventPublisher {
	if p == nil {
		return discardEvents{}
	}
	return p
}

type validator interface {
	Validate() error
}

// bindJSON decodes the body into req and runs its Validate. Unknown
// properties and anything after the first JSON value are rejected. On failure
// the 400 response is already written and false is returned.
func bindJSON(c *gin.Context, req validator) bool {
	if c.Request.Body == nil {
		resp.Error(c, decodeError(io.EOF))
		return false
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		resp.Error(c, decodeError(err))
		return false
	}
	if dec.More() {
		resp.Error(c, apperr.Validation("Request body must contain a single JSON object", nil))
		return false
	}
	if err := req.Validate(); err != nil {
		resp.Error(c, err)
		return false
	}
	return true
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.Is(err, io.EOF):
		return apperr.Validation("Request body must be a JSON object", nil)
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Validation("Malformed JSON body", nil)
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			return apperr.Validation("Request body must be a JSON object", nil)
		}
		return fieldError(field, fmt.Sprintf("%s must be a %s", field, typeErr.Type.String()))
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return fieldError(field, fmt.Sprintf("property %s should not exist", field))
	}
	return apperr.Validation(err.Error(), nil)
}

func fieldError(field, msg string) error {
	return apperr.Validation(msg, []map[string]string{{"field": field, "message": msg}})
}

func listQuery(c *gin.Context) services.ListQuery {
	return services.ListQuery{
		Page:   c.Query("page"),
		Limit:  c.Query("limit"),
		Search: c.Query("search"),
	}
}
