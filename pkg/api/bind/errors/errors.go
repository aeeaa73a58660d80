package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/foodgram-dev/foodgram/pkg/api/types/errors"
)

// Canned texts of framework-level rejections.
const (
	MsgNotAuthenticated = "Учетные данные не были предоставлены."
	MsgInvalidToken     = "Недопустимый токен."
	MsgPermissionDenied = "У вас недостаточно прав для выполнения данного действия."
	MsgNotFound         = "Страница не найдена."
	MsgServerError      = "Произошла ошибка сервера."
	MsgInvalidPage      = "Недопустимая страница."
	MsgThrottled        = "Запрос был проигнорирован."
)

// Canned texts of field validation failures.
const (
	MsgRequired     = "Обязательное поле."
	MsgUnique       = "Это поле должно быть уникальным."
	MsgInvalidEmail = "Введите корректный адрес электронной почты."
	MsgInvalidValue = "Введите правильное значение."
	MsgInvalidImage = "Загрузите корректное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	MsgNotANumber   = "Введите число."
)

// MsgTooLong is the text rejecting a string over its length limit.
func MsgTooLong(limit int) string {
	return fmt.Sprintf("Убедитесь, что это поле содержит не более %d символов.", limit)
}

// MsgAtLeast is the text rejecting a number under its lower bound.
func MsgAtLeast(bound int) string {
	return fmt.Sprintf("Убедитесь, что это значение больше либо равно %d.", bound)
}

// MsgAtMost is the text rejecting a number over its upper bound.
func MsgAtMost(bound int) string {
	return fmt.Sprintf("Убедитесь, что это значение меньше либо равно %d.", bound)
}

// MsgPasswordTooShort is the text rejecting a too-short password.
func MsgPasswordTooShort(min int) string {
	return fmt.Sprintf(
		"Введённый пароль слишком короткий. Он должен содержать как минимум %d символов.", min,
	)
}

// MsgInvalidCredentials is the text rejecting a login whose email and
// password match no active user.
const MsgInvalidCredentials = "Невозможно войти с предоставленными учетными данными."

// Fields is a per-field failure map for ValidationError, re-exported
// so that handlers build it without importing the types package.
type Fields = apierr.Fields

// NotFound: 404 with {"detail": ...}.
func NotFound() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, apierr.Detail{Detail: MsgNotFound})
}

// NotAuthenticated: 401 with {"detail": ...}, for requests lacking
// credentials.
func NotAuthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apierr.Detail{Detail: MsgNotAuthenticated})
}

// InvalidToken: 401 with {"detail": ...}, for requests carrying a token
// that does not hold.
func InvalidToken(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, apierr.Detail{Detail: MsgInvalidToken}).
		SetInternal(err)
}

// PermissionDenied: 403 with {"detail": ...}.
func PermissionDenied() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusForbidden, apierr.Detail{Detail: MsgPermissionDenied})
}

// BadRequestDetail: 400 with {"detail": ...}.
func BadRequestDetail(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apierr.Detail{Detail: msg})
}

// BadRequestErrors: 400 with {"errors": ...}, the envelope of domain
// rejections.
func BadRequestErrors(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apierr.Errors{Errors: msg})
}

// BadRequestError: 400 with {"error": ...}.
func BadRequestError(msg string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, apierr.Error{Error: msg})
}

// ValidationError: 400 with field messages.
func ValidationError(fields apierr.Fields) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, fields)
}

// NonFieldError: 400 with a message under "non_field_errors".
func NonFieldError(msg string) *echo.HTTPError {
	return ValidationError(apierr.Fields{apierr.NonFieldErrors: {msg}})
}

// InvalidPage: 404 with {"detail": ...}, for paging windows beyond the
// listing or page parameters which are not positive integers.
func InvalidPage() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, apierr.Detail{Detail: MsgInvalidPage})
}

// Throttled: 429 with {"detail": ...}.
func Throttled() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusTooManyRequests, apierr.Detail{Detail: MsgThrottled})
}

// MethodNotAllowed: 405 with {"detail": ...} naming the method.
func MethodNotAllowed(method string) *echo.HTTPError {
	return echo.NewHTTPError(
		http.StatusMethodNotAllowed,
		apierr.Detail{Detail: fmt.Sprintf("Метод %q не разрешен.", method)},
	)
}

// InternalServerError: 500 with {"detail": ...}.
func InternalServerError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, apierr.Detail{Detail: MsgServerError}).
		SetInternal(err)
}

// Normalize gives every error the JSON envelope of this API.
//
// Handlers return enveloped errors already; errors raised by the
// framework itself (unknown routes, wrong methods, panics) carry plain
// string messages and are rewrapped here.
func Normalize(err error, c echo.Context) *echo.HTTPError {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return InternalServerError(err)
	}
	if _, plain := he.Message.(string); !plain {
		return he
	}

	switch he.Code {
	case http.StatusNotFound:
		return NotFound()
	case http.StatusMethodNotAllowed:
		return MethodNotAllowed(c.Request().Method)
	case http.StatusUnauthorized:
		return NotAuthenticated()
	case http.StatusForbidden:
		return PermissionDenied()
	}
	if http.StatusInternalServerError <= he.Code {
		return InternalServerError(err)
	}
	return echo.NewHTTPError(he.Code, apierr.Detail{Detail: fmt.Sprint(he.Message)}).
		SetInternal(err)
}
