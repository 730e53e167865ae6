package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeStringList(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    []string
		wantErr bool
	}{
		{"string slice", []string{"monday", "friday"}, []string{"monday", "friday"}, false},
		{"comma string", "monday, friday ,sunday", []string{"monday", "friday", "sunday"}, false},
		{"interface slice", []interface{}{"a", "b"}, []string{"a", "b"}, false},
		{"primitive.A", primitive.A{"a", "b"}, []string{"a", "b"}, false},
		{"drops blanks", []string{" ", "a", ""}, []string{"a"}, false},
		{"nil", nil, nil, true},
		{"number", 42, nil, true},
		{"mixed slice", []interface{}{"a", 1}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStringList(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
