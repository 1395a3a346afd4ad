package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rrens/tourism-api/internal/api/middleware"
	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// decode reads a JSON body into dst and validates it. On failure it writes
// the 400 response and returns false.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			response.BadRequest(w, err.Error())
			return false
		}
		response.BadRequest(w, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			response.BadRequest(w, fieldErrors(validationErrors))
			return false
		}
		response.BadRequest(w, err.Error())
		return false
	}
	return true
}

func fieldErrors(validationErrors validator.ValidationErrors) map[string]string {
	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		field := toSnake(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "field is required"
		case "email":
			errs[field] = "invalid email format"
		case "url":
			errs[field] = "invalid url"
		case "min":
			errs[field] = "must be at least " + e.Param()
		case "max":
			errs[field] = "must be at most " + e.Param()
		case "oneof":
			errs[field] = "must be one of: " + e.Param()
		case "gtefield":
			errs[field] = "must not be before " + toSnake(e.Param())
		default:
			errs[field] = "validation failed on " + e.Tag()
		}
	}
	return errs
}

// toSnake turns a Go field name into its JSON spelling, e.g. SessionID -> session_id
func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// handleError maps service errors onto HTTP statuses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidInput):
		response.BadRequest(w, err.Error())
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		response.InternalError(w, "internal server error")
	}
}

func actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, ok := middleware.GetActor(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
	}
	return a, ok
}

// optionalActor returns the caller on routes where authentication is optional
func optionalActor(r *http.Request) *domain.Actor {
	a, ok := middleware.GetActor(r.Context())
	if !ok {
		return nil
	}
	return &a
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.BadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// listingQuery parses list query parameters. categoryParam names the query
// key used for the category filter.
func listingQuery(w http.ResponseWriter, r *http.Request, categoryParam string) (domain.ListingFilter, bool, bool) {
	return listQuery(w, r, categoryParam, domain.ListingOrderings)
}

func listQuery(w http.ResponseWriter, r *http.Request, categoryParam string, orderings map[string]bool) (domain.ListingFilter, bool, bool) {
	q := r.URL.Query()
	filter := domain.ListingFilter{
		Category: q.Get(categoryParam),
		Region:   q.Get("region"),
		Status:   q.Get("status"),
		Search:   strings.TrimSpace(q.Get("search")),
		Ordering: q.Get("ordering"),
	}

	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "featured must be true or false")
			return filter, false, false
		}
		filter.Featured = &featured
	}
	if filter.Ordering != "" && !orderings[filter.Ordering] {
		response.BadRequest(w, "unsupported ordering")
		return filter, false, false
	}

	var ok bool
	if filter.Limit, ok = intQuery(w, r, "limit"); !ok {
		return filter, false, false
	}
	if filter.Offset, ok = intQuery(w, r, "offset"); !ok {
		return filter, false, false
	}

	mine, _ := strconv.ParseBool(q.Get("mine"))
	return filter, mine, true
}

func intQuery(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		response.BadRequest(w, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}
