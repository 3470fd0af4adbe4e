package errors

import (
	"net/http"

	"morgenstar/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing (German) error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches errors by business code so that copies made by WithDetails or
// WithMessage still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy carrying a different user-facing message
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// General errors
var (
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Ungültige Eingabedaten",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Nicht autorisiert",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Zugriff verweigert",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Nicht gefunden",
		"",
	)

	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"RATE_LIMITED",
		"Zu viele Anfragen",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Datenbanktransaktion fehlgeschlagen",
		"",
	)

	ErrDatabaseUnavailable = NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_UNAVAILABLE",
		"Datenbank nicht erreichbar",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Interner Serverfehler",
		"",
	)
)

// Cart errors
var (
	ErrVariantNotFound = NewBaseError(
		http.StatusNotFound,
		"VARIANT_NOT_FOUND",
		"Produktvariante nicht gefunden",
		"",
	)

	ErrInvalidQuantity = NewBaseError(
		http.StatusBadRequest,
		"INVALID_QUANTITY",
		"Menge muss mindestens 1 sein",
		"",
	)

	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"Warenkorbposition nicht gefunden",
		"",
	)
)

// Order errors
var (
	ErrEmptyCart = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_CART",
		"Warenkorb ist leer",
		"",
	)

	ErrAddressMissing = NewBaseError(
		http.StatusBadRequest,
		"ADDRESS_MISSING",
		"Adressdaten fehlen",
		"",
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusConflict,
		"INSUFFICIENT_STOCK",
		"Nicht genügend Lagerbestand",
		"",
	)

	ErrOrderCreationFailed = NewBaseError(
		http.StatusInternalServerError,
		"ORDER_CREATION_FAILED",
		"Fehler bei der Bestellerstellung",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Bestellung nicht gefunden",
		"",
	)

	ErrStatusRequired = NewBaseError(
		http.StatusBadRequest,
		"STATUS_REQUIRED",
		"Status ist erforderlich",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Ungültiger Status",
		"",
	)

	// ErrInvalidStatusTransition carries a dynamic message, see entity.Order.TransitionTo.
	ErrInvalidStatusTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_STATUS_TRANSITION",
		"Ungültiger Statusübergang",
		"",
	)
)

// Coupon errors
var (
	ErrCouponCodeRequired = NewBaseError(
		http.StatusBadRequest,
		"COUPON_CODE_REQUIRED",
		"Gutscheincode ist erforderlich",
		"",
	)

	ErrCouponNotFound = NewBaseError(
		http.StatusNotFound,
		"COUPON_NOT_FOUND",
		"Ungültiger Gutscheincode",
		"",
	)

	ErrCouponInactive = NewBaseError(
		http.StatusBadRequest,
		"COUPON_INACTIVE",
		"Gutscheincode ist nicht mehr aktiv",
		"",
	)

	ErrCouponExpired = NewBaseError(
		http.StatusBadRequest,
		"COUPON_EXPIRED",
		"Gutscheincode ist nicht mehr gültig",
		"",
	)

	ErrCouponExhausted = NewBaseError(
		http.StatusBadRequest,
		"COUPON_EXHAUSTED",
		"Gutscheincode ist ausgeschöpft",
		"",
	)

	// ErrCouponMinOrderValue carries the formatted minimum, see entity.Coupon.Evaluate.
	ErrCouponMinOrderValue = NewBaseError(
		http.StatusBadRequest,
		"COUPON_MIN_ORDER_VALUE",
		"Mindestbestellwert nicht erreicht",
		"",
	)

	ErrCouponAlreadyExists = NewBaseError(
		http.StatusConflict,
		"COUPON_ALREADY_EXISTS",
		"Ein Gutschein mit diesem Code existiert bereits",
		"",
	)
)

// Payment errors
var (
	ErrInvalidAmount = NewBaseError(
		http.StatusBadRequest,
		"INVALID_AMOUNT",
		"Ungültiger Betrag",
		"",
	)

	ErrOrderIDRequired = NewBaseError(
		http.StatusBadRequest,
		"ORDER_ID_REQUIRED",
		"Bestell-ID ist erforderlich",
		"",
	)

	ErrMissingSignature = NewBaseError(
		http.StatusBadRequest,
		"MISSING_SIGNATURE",
		"Keine Stripe-Signatur",
		"",
	)

	ErrInvalidSignature = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SIGNATURE",
		"Ungültige Signatur",
		"",
	)

	ErrPaymentFailed = NewBaseError(
		http.StatusBadGateway,
		"PAYMENT_INTENT_FAILED",
		"Fehler bei der Zahlungserstellung",
		"",
	)
)

// Catalogue errors
var (
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Produkt nicht gefunden",
		"",
	)

	ErrProductInputInvalid = NewBaseError(
		http.StatusBadRequest,
		"PRODUCT_INPUT_INVALID",
		"Titel und mindestens eine Variante sind erforderlich",
		"",
	)

	ErrProductAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PRODUCT_ALREADY_EXISTS",
		"Ein Produkt mit diesem Titel existiert bereits",
		"",
	)

	ErrSKUAlreadyExists = NewBaseError(
		http.StatusConflict,
		"SKU_ALREADY_EXISTS",
		"Eine Variante mit dieser SKU existiert bereits",
		"",
	)
)

// Wishlist errors
var (
	ErrWishlistDuplicate = NewBaseError(
		http.StatusBadRequest,
		"WISHLIST_DUPLICATE",
		"Produkt ist bereits auf der Wunschliste",
		"",
	)

	ErrWishlistItemNotFound = NewBaseError(
		http.StatusNotFound,
		"WISHLIST_ITEM_NOT_FOUND",
		"Produkt nicht auf der Wunschliste",
		"",
	)
)

// Newsletter errors
var (
	ErrEmailRequired = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_REQUIRED",
		"E-Mail-Adresse ist erforderlich",
		"",
	)

	ErrInvalidEmail = NewBaseError(
		http.StatusBadRequest,
		"INVALID_EMAIL",
		"Ungültige E-Mail-Adresse",
		"",
	)

	ErrAlreadySubscribed = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_SUBSCRIBED",
		"Diese E-Mail-Adresse ist bereits für den Newsletter angemeldet",
		"",
	)

	ErrSubscriberNotFound = NewBaseError(
		http.StatusNotFound,
		"SUBSCRIBER_NOT_FOUND",
		"Diese E-Mail-Adresse ist nicht für den Newsletter angemeldet",
		"",
	)
)

// Account errors
var (
	ErrRegistrationFieldsMissing = NewBaseError(
		http.StatusBadRequest,
		"REGISTRATION_FIELDS_MISSING",
		"Alle Felder sind erforderlich",
		"",
	)

	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_SHORT",
		"Passwort muss mindestens 6 Zeichen lang sein",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"Ein Benutzer mit dieser E-Mail-Adresse existiert bereits",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"Benutzer nicht gefunden",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"E-Mail oder Passwort ist falsch",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Ungültiges oder abgelaufenes Token",
		"",
	)
)

// Device errors
var (
	ErrDeviceNotFound = NewBaseError(
		http.StatusNotFound,
		"DEVICE_NOT_FOUND",
		"Gerät nicht gefunden",
		"",
	)

	ErrUnsupportedPlatform = NewBaseError(
		http.StatusBadRequest,
		"UNSUPPORTED_PLATFORM",
		"Nicht unterstützte Geräteplattform",
		"platform must be ios, android or web",
	)
)

// Upload errors
var (
	ErrNoFileUploaded = NewBaseError(
		http.StatusBadRequest,
		"NO_FILE",
		"Keine Datei hochgeladen",
		"",
	)

	ErrInvalidFile = NewBaseError(
		http.StatusBadRequest,
		"INVALID_FILE",
		"Ungültige Datei. Bitte ein JPEG-, PNG- oder WebP-Bild unter 5 MB hochladen.",
		"",
	)

	ErrUploadFailed = NewBaseError(
		http.StatusInternalServerError,
		"UPLOAD_FAILED",
		"Fehler beim Hochladen der Datei",
		"",
	)

	ErrFileNotFound = NewBaseError(
		http.StatusNotFound,
		"FILE_NOT_FOUND",
		"Datei nicht gefunden",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing error message
func (e *DatabaseExecuteError) Message() string {
	return "Interner Serverfehler"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
