package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Date   string          `json:"date" validate:"required,iso_date"`
	Type   string          `form:"type" validate:"omitempty,type_filter"`
	Amount decimal.Decimal `json:"amount" validate:"nonzero_amount"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestRules(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		input   sample
		wantErr string
	}{
		{
			name:  "valid",
			input: sample{Date: "2024-02-29", Type: "expense", Amount: decimal.RequireFromString("-12.50")},
		},
		{
			name:  "empty type is allowed",
			input: sample{Date: "2024-01-01", Amount: decimal.NewFromInt(3)},
		},
		{
			name:    "impossible date",
			input:   sample{Date: "2023-02-29", Amount: decimal.NewFromInt(1)},
			wantErr: "date: must be a date in YYYY-MM-DD format",
		},
		{
			name:    "slash date",
			input:   sample{Date: "01/15/2024", Amount: decimal.NewFromInt(1)},
			wantErr: "date: must be a date in YYYY-MM-DD format",
		},
		{
			name:    "unknown type",
			input:   sample{Date: "2024-01-01", Type: "refund", Amount: decimal.NewFromInt(1)},
			wantErr: "type: must be one of all, expense, income",
		},
		{
			name:    "zero amount",
			input:   sample{Date: "2024-01-01"},
			wantErr: "amount: must be a non-zero number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, Describe(err))
		})
	}
}

func TestDescribeJoinsFields(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(sample{Type: "weekly"})
	require.Error(t, err)
	assert.Equal(t, "date: is required; type: must be one of all, expense, income; amount: must be a non-zero number", Describe(err))
}
