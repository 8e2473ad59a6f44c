package ladderhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	ladderdomain "github.com/Black-And-White-Club/padel-ladder/app/modules/ladder/domain"
	"github.com/Black-And-White-Club/padel-ladder/pkg/attr"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch ladderdomain.KindOf(err) {
	case ladderdomain.KindNotFound:
		return http.StatusNotFound
	case ladderdomain.KindAlreadyInCategory,
		ladderdomain.KindDuplicatePending,
		ladderdomain.KindInvalidTransition,
		ladderdomain.KindConstraintConflict:
		return http.StatusConflict
	case ladderdomain.KindEligibilityDenied, ladderdomain.KindCategoryMismatch:
		return http.StatusUnprocessableEntity
	case ladderdomain.KindUnauthorized:
		return http.StatusForbidden
	case ladderdomain.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(body)
}

func (h *LadderHTTPHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	kind := string(ladderdomain.KindOf(err))
	if kind == "" {
		kind = "internal"
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Request failed",
			attr.String("method", r.Method),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}

	writeJSON(w, status, ErrorResponse{
		Error:   kind,
		Reason:  string(ladderdomain.ReasonOf(err)),
		Message: ladderdomain.UserMessage(err),
	})
}

func writeUnauthenticated(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated", Message: msg})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. An empty body decodes as {}. Failures come back as
// Validation errors naming the offending fields.
func (h *LadderHTTPHandlers) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return ladderdomain.Validation("malformed request body: %v", err)
	}
	return h.validateStruct(dst)
}

func (h *LadderHTTPHandlers) validateStruct(v any) error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return ladderdomain.Validation("%v", err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return ladderdomain.Validation("%s", strings.Join(fields, "; "))
}
