package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode mirrors how the HTTP layer decodes bodies: numbers stay json.Number.
func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var payload map[string]interface{}
	require.NoError(t, dec.Decode(&payload))
	return payload
}

func assertValidationCode(t *testing.T, err error, code string) {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, code, vErr.Code)
}

func TestParseCreateProductRequest_MissingFields(t *testing.T) {
	t.Run("Reports every missing field", func(t *testing.T) {
		_, err := ParseCreateProductRequest(map[string]interface{}{})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, CodeMissingFields, vErr.Code)
		assert.Equal(t, []string{"name", "sku", "price"}, vErr.Fields)
		assert.EqualError(t, err, "Missing required fields: name, sku, price")
	})

	t.Run("Reports only absent fields", func(t *testing.T) {
		_, err := ParseCreateProductRequest(decode(t, `{"sku":"W-1"}`))
		assert.EqualError(t, err, "Missing required fields: name, price")
	})

	t.Run("Nil payload behaves like empty", func(t *testing.T) {
		_, err := ParseCreateProductRequest(nil)
		assertValidationCode(t, err, CodeMissingFields)
	})
}

func TestParseCreateProductRequest_Price(t *testing.T) {
	t.Run("Numeric string keeps exact digits", func(t *testing.T) {
		req, err := ParseCreateProductRequest(decode(t, `{"name":"Widget","sku":"W-100","price":"10.10"}`))
		require.NoError(t, err)
		assert.Equal(t, "10.1", req.Price().String())
		assert.True(t, req.Price().Equal(decimal.RequireFromString("10.10")))
	})

	t.Run("JSON number keeps exact digits", func(t *testing.T) {
		req, err := ParseCreateProductRequest(decode(t, `{"name":"Widget","sku":"W-100","price":19.99}`))
		require.NoError(t, err)
		assert.True(t, req.Price().Equal(decimal.RequireFromString("19.99")))
	})

	t.Run("Plain float64 uses shortest representation", func(t *testing.T) {
		req, err := ParseCreateProductRequest(map[string]interface{}{"name": "A", "sku": "B", "price": 0.1})
		require.NoError(t, err)
		assert.Equal(t, "0.1", req.Price().String())
	})

	t.Run("Zero is allowed", func(t *testing.T) {
		req, err := ParseCreateProductRequest(decode(t, `{"name":"Free","sku":"F-1","price":"0"}`))
		require.NoError(t, err)
		assert.True(t, req.Price().IsZero())
	})

	invalid := []string{`"abc"`, `null`, `true`, `""`, `{"amount":1}`, `[1]`, `"1.2.3"`}
	for _, raw := range invalid {
		t.Run("Invalid price "+raw, func(t *testing.T) {
			_, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":`+raw+`}`))
			assertValidationCode(t, err, CodeInvalidPrice)
			assert.EqualError(t, err, "Invalid price format")
		})
	}

	for _, raw := range []string{`"-5"`, `-0.01`} {
		t.Run("Negative price "+raw, func(t *testing.T) {
			_, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":`+raw+`}`))
			assertValidationCode(t, err, CodeNegativePrice)
			assert.EqualError(t, err, "Price must be non-negative")
		})
	}
}

func TestParseCreateProductRequest_NameAndSKU(t *testing.T) {
	_, err := ParseCreateProductRequest(decode(t, `{"name":"   ","sku":"B","price":"1"}`))
	assertValidationCode(t, err, CodeInvalidName)

	_, err = ParseCreateProductRequest(decode(t, `{"name":"A","sku":42,"price":"1"}`))
	assertValidationCode(t, err, CodeInvalidSKU)

	req, err := ParseCreateProductRequest(decode(t, `{"name":"  Widget ","sku":" W-1 ","price":"1"}`))
	require.NoError(t, err)
	assert.Equal(t, "Widget", req.Name())
	assert.Equal(t, "W-1", req.SKU())
}

func TestParseCreateProductRequest_Inventory(t *testing.T) {
	t.Run("No warehouse means no inventory", func(t *testing.T) {
		req, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":"1","initial_quantity":3}`))
		require.NoError(t, err)
		_, ok := req.WarehouseID()
		assert.False(t, ok)
	})

	t.Run("Null warehouse means no inventory", func(t *testing.T) {
		req, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":"1","warehouse_id":null}`))
		require.NoError(t, err)
		_, ok := req.WarehouseID()
		assert.False(t, ok)
	})

	for _, raw := range []string{`0`, `""`, `"0"`} {
		t.Run("Zero warehouse means no inventory "+raw, func(t *testing.T) {
			req, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":"1","warehouse_id":`+raw+`,"initial_quantity":3}`))
			require.NoError(t, err)
			_, ok := req.WarehouseID()
			assert.False(t, ok)
		})
	}

	t.Run("Quantity defaults to zero", func(t *testing.T) {
		req, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":"1","warehouse_id":5}`))
		require.NoError(t, err)
		id, ok := req.WarehouseID()
		assert.True(t, ok)
		assert.Equal(t, int64(5), id)
		assert.Equal(t, 0, req.InitialQuantity())
	})

	t.Run("Warehouse and quantity", func(t *testing.T) {
		req, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":"1","warehouse_id":"7","initial_quantity":10}`))
		require.NoError(t, err)
		id, _ := req.WarehouseID()
		assert.Equal(t, int64(7), id)
		assert.Equal(t, 10, req.InitialQuantity())
	})

	for _, raw := range []string{`-1`, `2.5`, `"10"`, `true`, `9999999999`} {
		t.Run("Invalid quantity "+raw, func(t *testing.T) {
			_, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":"1","warehouse_id":5,"initial_quantity":`+raw+`}`))
			assertValidationCode(t, err, CodeInvalidQuantity)
			assert.EqualError(t, err, "Invalid quantity")
		})
	}

	for _, raw := range []string{`-3`, `"abc"`, `1.5`, `{}`, `true`} {
		t.Run("Invalid warehouse "+raw, func(t *testing.T) {
			_, err := ParseCreateProductRequest(decode(t, `{"name":"A","sku":"B","price":"1","warehouse_id":`+raw+`}`))
			assertValidationCode(t, err, CodeInvalidWarehouse)
		})
	}
}
