package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation error codes.
const (
	CodeMissingFields    = "missing_fields"
	CodeInvalidPrice     = "invalid_price"
	CodeNegativePrice    = "negative_price"
	CodeInvalidQuantity  = "invalid_quantity"
	CodeInvalidName      = "invalid_name"
	CodeInvalidSKU       = "invalid_sku"
	CodeInvalidWarehouse = "invalid_warehouse"
)

var requiredFields = []string{"name", "sku", "price"}

// ValidationError is a client input problem detected before the store is touched.
type ValidationError struct {
	Code   string
	Fields []string // only set for CodeMissingFields
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeMissingFields:
		return "Missing required fields: " + strings.Join(e.Fields, ", ")
	case CodeInvalidPrice:
		return "Invalid price format"
	case CodeNegativePrice:
		return "Price must be non-negative"
	case CodeInvalidQuantity:
		return "Invalid quantity"
	case CodeInvalidName:
		return "Name must be a non-empty string"
	case CodeInvalidSKU:
		return "SKU must be a non-empty string"
	case CodeInvalidWarehouse:
		return "Invalid warehouse_id"
	default:
		return "Invalid request"
	}
}

// CreateProductRequest is a validated create-product payload. It cannot be
// modified after ParseCreateProductRequest returns it.
type CreateProductRequest struct {
	name            string
	sku             string
	price           decimal.Decimal
	warehouseID     int64
	hasWarehouse    bool
	initialQuantity int
}

func (r CreateProductRequest) Name() string           { return r.name }
func (r CreateProductRequest) SKU() string            { return r.sku }
func (r CreateProductRequest) Price() decimal.Decimal { return r.price }
func (r CreateProductRequest) InitialQuantity() int   { return r.initialQuantity }

// WarehouseID reports the target warehouse, ok is false when no inventory
// record should be created.
func (r CreateProductRequest) WarehouseID() (id int64, ok bool) {
	return r.warehouseID, r.hasWarehouse
}

// ParseCreateProductRequest validates a decoded JSON object. Numbers are
// expected as json.Number so prices keep their literal digits; plain Go
// numbers are accepted too. The returned error is always a *ValidationError.
func ParseCreateProductRequest(payload map[string]interface{}) (CreateProductRequest, error) {
	var req CreateProductRequest

	var missing []string
	for _, f := range requiredFields {
		if _, ok := payload[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return req, &ValidationError{Code: CodeMissingFields, Fields: missing}
	}

	name, ok := nonEmptyString(payload["name"])
	if !ok {
		return req, &ValidationError{Code: CodeInvalidName}
	}
	sku, ok := nonEmptyString(payload["sku"])
	if !ok {
		return req, &ValidationError{Code: CodeInvalidSKU}
	}

	price, ok := parseDecimal(payload["price"], true)
	if !ok {
		return req, &ValidationError{Code: CodeInvalidPrice}
	}
	if price.IsNegative() {
		return req, &ValidationError{Code: CodeNegativePrice}
	}

	req.name = name
	req.sku = sku
	req.price = price

	// null, zero and empty string all mean "no warehouse"
	if raw, present := payload["warehouse_id"]; present && !isBlank(raw) {
		id, ok := parseWarehouseID(raw)
		if !ok {
			return CreateProductRequest{}, &ValidationError{Code: CodeInvalidWarehouse}
		}
		if id != 0 {
			req.warehouseID = id
			req.hasWarehouse = true
		}
	}

	if raw, present := payload["initial_quantity"]; present && raw != nil {
		qty, ok := parseQuantity(raw)
		if !ok {
			return CreateProductRequest{}, &ValidationError{Code: CodeInvalidQuantity}
		}
		req.initialQuantity = qty
	}

	return req, nil
}

func nonEmptyString(v interface{}) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// parseDecimal converts a JSON scalar to an exact decimal from its text form.
// allowString controls whether quoted numbers are accepted.
func parseDecimal(v interface{}, allowString bool) (decimal.Decimal, bool) {
	var text string
	switch n := v.(type) {
	case json.Number:
		text = n.String()
	case string:
		if !allowString {
			return decimal.Decimal{}, false
		}
		text = strings.TrimSpace(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, false
		}
		text = strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	default:
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseQuantity(v interface{}) (int, bool) {
	d, ok := parseDecimal(v, false)
	if !ok || !d.IsInteger() || d.IsNegative() {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func parseWarehouseID(v interface{}) (int64, bool) {
	d, ok := parseDecimal(v, true)
	if !ok || !d.IsInteger() || d.IsNegative() {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, false
	}
	return d.IntPart(), true
}
