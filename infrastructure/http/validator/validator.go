package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/query"
)

// Query string keys that are not filters.
const (
	ParamPage  = "page"
	ParamLimit = "limit"
	ParamSort  = "sort"
	ParamOrder = "order"
)

const maxBodyBytes = 1 << 20

func ValidateRequired(value string) bool {
	return strings.TrimSpace(value) != ""
}

func ValidateJWT(token string) bool {
	if token == "" {
		return false
	}

	// JWT token harus memiliki 3 bagian yang dipisahkan oleh titik
	parts := strings.Split(token, ".")
	return len(parts) == 3
}

// PageRequest reads page, limit, sort and order from the query string. Every other
// key becomes a filter; the schema decides which of them are honoured.
// Explicit page or limit values must be positive integers.
func PageRequest(values url.Values) (query.PageRequest, error) {
	req := query.PageRequest{Filters: query.Filters{}}

	page, err := positiveInt(values, ParamPage)
	if err != nil {
		return query.PageRequest{}, err
	}
	limit, err := positiveInt(values, ParamLimit)
	if err != nil {
		return query.PageRequest{}, err
	}
	req.Pagination = query.Pagination{Page: page, Limit: limit}

	field := strings.TrimSpace(values.Get(ParamSort))
	order := strings.ToLower(strings.TrimSpace(values.Get(ParamOrder)))
	if field != "" || order != "" {
		req.Sort = &query.Sort{Field: field, Order: query.Order(order)}
	}

	for key, vals := range values {
		switch key {
		case ParamPage, ParamLimit, ParamSort, ParamOrder:
			continue
		}
		if len(vals) > 0 {
			req.Filters[key] = vals[0]
		}
	}
	return req, nil
}

// Pagination reads only page and limit.
func Pagination(values url.Values) (query.Pagination, error) {
	page, err := positiveInt(values, ParamPage)
	if err != nil {
		return query.Pagination{}, err
	}
	limit, err := positiveInt(values, ParamLimit)
	if err != nil {
		return query.Pagination{}, err
	}
	return query.Pagination{Page: page, Limit: limit}, nil
}

// positiveInt returns 0 when key is absent.
func positiveInt(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerr.ErrMalformedPagination(key, raw)
	}
	if n <= 0 {
		return 0, domainerr.ErrInvalidPagination(key, n)
	}
	return n, nil
}

// DecodeJSON decodes a single JSON object from the request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return domainerr.ErrInvalidRequest("request body is required")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domainerr.ErrInvalidRequest("request body is required")
		}
		return domainerr.ErrInvalidRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	if dec.More() {
		return domainerr.ErrInvalidRequest("request body must contain a single JSON object")
	}
	return nil
}
