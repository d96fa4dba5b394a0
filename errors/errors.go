package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindCapacity
	KindNotFound
	KindAuthorization
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindCapacity:
		return "capacity"
	case KindNotFound:
		return "not found"
	case KindAuthorization:
		return "authorization"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// Error is a caller-facing failure. Two Errors match under errors.Is when their
// kinds are equal, so the Err* sentinels below can be used as targets.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation      = &Error{Kind: KindValidation}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrCapacity        = &Error{Kind: KindCapacity}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrAuthorization   = &Error{Kind: KindAuthorization}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
)

func newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return newf(KindValidation, format, args...)
}

func Conflict(format string, args ...any) error {
	return newf(KindConflict, format, args...)
}

func Capacity(format string, args ...any) error {
	return newf(KindCapacity, format, args...)
}

func NotFound(format string, args ...any) error {
	return newf(KindNotFound, format, args...)
}

func Authorization(format string, args ...any) error {
	return newf(KindAuthorization, format, args...)
}

func Unauthenticated(format string, args ...any) error {
	return newf(KindUnauthenticated, format, args...)
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusOf maps an error to the HTTP status used for it on every route.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindConflict, KindCapacity:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusForbidden, "lack of permissions", data)
}

func RaiseUnauthorizedError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "unauthorized", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

func RaiseConflictError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusConflict, "conflict", data)
}

// RaiseFromError writes the response for an error returned by a service.
// Internal errors are not echoed to the client.
func RaiseFromError(context *fiber.Ctx, err error) error {
	switch StatusOf(err) {
	case fiber.StatusBadRequest:
		return RaiseBadRequestError(context, err.Error())
	case fiber.StatusConflict:
		return RaiseConflictError(context, err.Error())
	case fiber.StatusNotFound:
		return RaiseNotFoundError(context, err.Error())
	case fiber.StatusForbidden:
		return RaisePermissionsError(context, err.Error())
	case fiber.StatusUnauthorized:
		return RaiseUnauthorizedError(context, err.Error())
	default:
		return RaiseInternalServerError(context, "something went wrong, please try again later")
	}
}
