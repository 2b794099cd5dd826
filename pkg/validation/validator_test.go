package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Level string `validate:"oneof=debug info"`
	Port  int    `validate:"min=1,max=65535"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      sample
		wantErr bool
		fields  []string
	}{
		{
			name: "valid",
			in:   sample{Name: "a", Level: "info", Port: 80},
		},
		{
			name:    "missing name",
			in:      sample{Level: "info", Port: 80},
			wantErr: true,
			fields:  []string{"sample.Name"},
		},
		{
			name:    "multiple failures",
			in:      sample{Level: "trace", Port: 0},
			wantErr: true,
			fields:  []string{"sample.Name", "sample.Level", "sample.Port"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.in)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var ve *RequestValidationError
			require.True(t, errors.As(err, &ve))

			got := make([]string, 0, len(ve.Errors()))
			for _, fe := range ve.Errors() {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestTranslateErrorMessages(t *testing.T) {
	err := ValidateStruct(&sample{Name: "a", Level: "trace", Port: 70000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample.Level must be one of: debug info")
	assert.Contains(t, err.Error(), "sample.Port must be at most 65535")
}
