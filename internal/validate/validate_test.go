package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub/internal/validate"
)

func TestAmountKeepsSubmittedText(t *testing.T) {
	var body struct {
		Price    validate.Amount  `json:"price"`
		Original *validate.Amount `json:"originalPrice"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price":"199.99","originalPrice":249.50}`), &body))
	assert.Equal(t, validate.Amount("199.99"), body.Price)
	require.NotNil(t, body.Original)
	assert.Equal(t, validate.Amount("249.50"), *body.Original, "number literals keep their trailing zeros")

	body.Original = nil
	require.NoError(t, json.Unmarshal([]byte(`{"price":499,"originalPrice":null}`), &body))
	assert.Equal(t, validate.Amount("499"), body.Price)
	assert.Nil(t, body.Original)

	assert.Error(t, json.Unmarshal([]byte(`{"price":true}`), &body))
}

func TestDecimal(t *testing.T) {
	for _, ok := range []string{"0", "499", "199.99", " 10.5 ", "0.0001"} {
		_, valid := validate.Decimal(ok)
		assert.True(t, valid, ok)
	}
	for _, bad := range []string{"", "-1", "1e3", "abc", "1.", ".5", "+3", "12,50", "NaN"} {
		_, valid := validate.Decimal(bad)
		assert.False(t, valid, bad)
	}
}

func TestID(t *testing.T) {
	id, ok := validate.ID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5", "9999999999999999999"} {
		_, ok := validate.ID(bad)
		assert.False(t, ok, bad)
	}
}

type sample struct {
	StoreName string           `json:"storeName" validate:"required,max=10"`
	GST       string           `json:"gstNumber" validate:"omitempty,gstin"`
	Phone     string           `json:"phoneNumber" validate:"required,phone"`
	Price     validate.Amount  `json:"price" validate:"required,amount"`
	Original  *validate.Amount `json:"originalPrice" validate:"omitempty,amount"`
	Category  int64            `json:"categoryId" validate:"required,gt=0"`
}

func TestStructMessages(t *testing.T) {
	good := sample{StoreName: "Kirana", GST: "22AAAAA0000A1Z5", Phone: "+919876543210", Price: "10", Category: 1}
	require.NoError(t, validate.Struct(good))

	cases := []struct {
		want   string
		mutate func(s *sample)
	}{
		{"storeName is required", func(s *sample) { s.StoreName = "" }},
		{"storeName must be at most 10 characters", func(s *sample) { s.StoreName = "a very long store" }},
		{"gstNumber must be a valid 15-character GSTIN", func(s *sample) { s.GST = "123" }},
		{"phoneNumber must be a valid phone number", func(s *sample) { s.Phone = "call me" }},
		{"price must be a non-negative decimal number", func(s *sample) { s.Price = "-2" }},
		{"categoryId is required", func(s *sample) { s.Category = 0 }},
	}
	for _, tc := range cases {
		s := good
		tc.mutate(&s)
		err := validate.Struct(s)
		require.Error(t, err, tc.want)
		assert.Equal(t, tc.want, validate.Message(err))
	}

	bad := validate.Amount("abc")
	s := good
	s.Original = &bad
	assert.Equal(t, "originalPrice must be a non-negative decimal number", validate.Message(validate.Struct(s)))
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, "22AAAAA0000A1Z5", validate.GSTIN(" 22aaaaa0000a1z5 "))
	assert.Equal(t, "+919876543210", validate.Phone("+91 98765-43210"))
}
