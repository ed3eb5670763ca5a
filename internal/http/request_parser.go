package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"orcamento/internal/core"
)

const maxBodyBytes = 1 << 16

var validate = newValidator()

// newValidator reports fields by their JSON names.
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

// Amount accepts either a JSON number or a numeric string ("12,50" included).
// Parsing to cents happens in core so the money rules live in one place.
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
	case len(b) > 0 && (b[0] == '-' || (b[0] >= '0' && b[0] <= '9')):
		*a = Amount(b)
	default:
		return fmt.Errorf("amount must be a number or numeric string")
	}
	return nil
}

type createTransactionRequest struct {
	Kind        string `json:"kind" validate:"required"`
	Amount      Amount `json:"amount" validate:"required"`
	Category    string `json:"category" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (req createTransactionRequest) toDomain() (core.NewTransaction, error) {
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		return core.NewTransaction{}, err
	}
	amount, err := core.ParseMoney(string(req.Amount))
	if err != nil {
		return core.NewTransaction{}, err
	}
	var date core.Date
	if req.Date != "" {
		if date, err = core.ParseDate(req.Date); err != nil {
			return core.NewTransaction{}, err
		}
	}
	return core.NewTransaction{
		Kind:        kind,
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}, nil
}

type createGoalRequest struct {
	Kind     string `json:"kind" validate:"required"`
	Category string `json:"category" validate:"max=100"`
	Amount   Amount `json:"amount" validate:"required"`
}

func (req createGoalRequest) toDomain() (core.NewGoal, error) {
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		return core.NewGoal{}, err
	}
	amount, err := core.ParseMoney(string(req.Amount))
	if err != nil {
		return core.NewGoal{}, err
	}
	return core.NewGoal{Kind: kind, Category: req.Category, Amount: amount}, nil
}

// errBadRequest marks malformed bodies and query parameters.
var errBadRequest = errors.New("bad request")

// decodeJSON reads a single JSON object into dst and validates its shape.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", errBadRequest)
	}
	return validate.Struct(dst)
}

// parseLimit reads ?limit=N. ok is false when the parameter is absent.
func parseLimit(r *http.Request) (n int, ok bool, err error) {
	v := strings.TrimSpace(r.URL.Query().Get("limit"))
	if v == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false, fmt.Errorf("%w: limit must be a positive integer", errBadRequest)
	}
	return n, true, nil
}
