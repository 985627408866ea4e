// Package apperror turns any failure into one of three client-facing kinds.
package apperror

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindUnauthorized     Kind = "Unauthorized"
	KindValidationFailed Kind = "ValidationFailed"
	KindServerFault      Kind = "ServerFault"
)

const (
	msgUnauthorized   = "Unauthorized"
	msgInvalidPayload = "Invalid request payload"
	msgConstraint     = "Request violates a data constraint"
	msgInternal       = "Internal server error"
)

// Error is the fixed response shape for every failure.
type Error struct {
	Kind    Kind   `json:"kind"`
	Status  int    `json:"-"`
	Message string `json:"error"`
	Detail  string `json:"detail,omitempty"`
}

func (e Error) Error() string { return string(e.Kind) + ": " + e.Message }

type known struct {
	target  error
	status  int
	message string
}

// Checked in order: the most specific sentinels come first.
var validationErrors = []known{
	{domain.ErrInvalidID, http.StatusBadRequest, "Invalid ID"},
	{domain.ErrInvalidCategory, http.StatusBadRequest, "Invalid category"},
	{domain.ErrInvalidProduct, http.StatusBadRequest, "Invalid product"},
	{domain.ErrInvalidUser, http.StatusBadRequest, "Invalid user"},
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid email or password"},
	{domain.ErrEmailTaken, http.StatusBadRequest, "Email is already registered"},
	{domain.ErrEmptyOrder, http.StatusBadRequest, "Order has no items"},
	{domain.ErrCategoryNotFound, http.StatusNotFound, "Category not found"},
	{domain.ErrProductNotFound, http.StatusNotFound, "Product not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{domain.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
	{domain.ErrNotFound, http.StatusNotFound, "Not found"},
}

// Normalizer is safe for concurrent use; it holds no mutable state.
type Normalizer struct {
	exposeDiagnostics bool
}

func NewNormalizer(exposeDiagnostics bool) *Normalizer {
	return &Normalizer{exposeDiagnostics: exposeDiagnostics}
}

func (n *Normalizer) Normalize(err error) Error {
	var shaped Error
	if errors.As(err, &shaped) {
		return shaped
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		return Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: msgUnauthorized}
	}

	for _, k := range validationErrors {
		if errors.Is(err, k.target) {
			return Error{Kind: KindValidationFailed, Status: k.status, Message: k.message}
		}
	}

	if errors.Is(err, domain.ErrValidation) {
		return Error{Kind: KindValidationFailed, Status: http.StatusBadRequest, Message: validationMessage(err)}
	}

	if isPayloadError(err) {
		return Error{Kind: KindValidationFailed, Status: http.StatusBadRequest, Message: msgInvalidPayload, Detail: err.Error()}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return Error{Kind: KindValidationFailed, Status: http.StatusBadRequest, Message: msgConstraint, Detail: pgErr.ConstraintName}
	}

	out := Error{Kind: KindServerFault, Status: http.StatusInternalServerError, Message: msgInternal}
	if n.exposeDiagnostics && err != nil {
		out.Detail = err.Error()
	}
	return out
}

// validationMessage strips the "validation failed: " parent prefix from
// ad-hoc validation errors so clients see the specific reason.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}

func isPayloadError(err error) bool {
	var (
		verrs     validator.ValidationErrors
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		numErr    *strconv.NumError
		sizeErr   *http.MaxBytesError
	)
	return errors.As(err, &verrs) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.As(err, &numErr) ||
		errors.As(err, &sizeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, http.ErrNotMultipart) ||
		errors.Is(err, http.ErrMissingFile)
}
