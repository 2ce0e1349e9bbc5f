package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordSetAndMatches(t *testing.T) {
	var p password

	require.NoError(t, p.Set("Sup3rSecret!"))
	require.NotEmpty(t, p.Hash)

	matches, err := p.Matches("Sup3rSecret!")
	require.NoError(t, err)
	assert.True(t, matches)

	matches, err = p.Matches("WrongPass1!")
	require.NoError(t, err)
	assert.False(t, matches)
}

func TestHasBillingProfile(t *testing.T) {
	empty := ""

	tests := []struct {
		name    string
		student Student
		want    bool
	}{
		{"no reference", Student{}, false},
		{"empty reference", Student{BillingCustomerID: &empty}, false},
		{"stored reference", Student{BillingCustomerID: ptrString("cus_123")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.student.HasBillingProfile())
		})
	}
}

func ptrString(s string) *string {
	return &s
}
