package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overrideRequest struct {
	Category    string `validate:"required,oneof=bookcase sofa chair"`
	MaxVariants int    `validate:"gt=0,lte=24"`
	Swatch      string `validate:"omitempty,hexcolor"`
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	err := Validate(overrideRequest{Category: "sofa", MaxVariants: 12, Swatch: "#FFFFFF"})
	assert.NoError(t, err)
}

func TestValidate_FieldMessages(t *testing.T) {
	tests := []struct {
		name  string
		in    overrideRequest
		field string
		want  string
	}{
		{"missing category", overrideRequest{MaxVariants: 1}, "Category", "is required"},
		{"unknown category", overrideRequest{Category: "lamp", MaxVariants: 1}, "Category", "must be one of: bookcase sofa chair"},
		{"zero variants", overrideRequest{Category: "sofa"}, "MaxVariants", "must be greater than 0"},
		{"too many variants", overrideRequest{Category: "sofa", MaxVariants: 30}, "MaxVariants", "must be less than or equal to 24"},
		{"bad swatch", overrideRequest{Category: "sofa", MaxVariants: 1, Swatch: "white"}, "Swatch", "must be a hex color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := fieldsOf(t, Validate(tt.in))
			assert.Equal(t, tt.want, fields[tt.field])
		})
	}
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(overrideRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Category' is required")
	assert.Contains(t, err.Error(), "; ")
}

type paletteStruct struct {
	Color string `validate:"palette_color"`
}

func TestRegisterValidation(t *testing.T) {
	require.NoError(t, RegisterValidation("palette_color", func(v string) bool {
		return v == "White" || v == "Grey"
	}))

	assert.NoError(t, Validate(paletteStruct{Color: "White"}))
	fields := fieldsOf(t, Validate(paletteStruct{Color: "Purple"}))
	assert.Equal(t, "failed on 'palette_color' validation", fields["Color"])
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"Category":"chair","MaxVariants":3}`, ""},
		{"invalid json", `{invalid`, "decode request body"},
		{"unknown field", `{"Category":"chair","MaxVariants":3,"Extra":1}`, "decode request body"},
		{"fails validation", `{"Category":"","MaxVariants":3}`, "Category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst overrideRequest
			err := DecodeAndValidate(req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "chair", dst.Category)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
