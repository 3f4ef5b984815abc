package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextGroupID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty set starts at 01", nil, "01"},
		{"appends after max", []string{"01", "02"}, "03"},
		{"fills the gap before appending", []string{"01", "02", "04"}, "03"},
		{"grows past two digits", fullRange(1, 99), "100"},
		{"ignores malformed ids", []string{"01", "abc", ""}, "02"},
		{"unordered input", []string{"03", "01"}, "02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextGroupID(tt.existing))
		})
	}
}

func fullRange(from, to int) []string {
	var ids []string
	for i := from; i <= to; i++ {
		ids = append(ids, NextGroupID(ids))
	}
	return ids
}

func TestNextItemID(t *testing.T) {
	assert.Equal(t, "01", NextItemID(nil))
	assert.Equal(t, "02", NextItemID([]string{"01", "03"}))
}

func TestNextOrderGroupID(t *testing.T) {
	assert.Equal(t, "202505", NextOrderGroupID(2025, 5, nil))
	assert.Equal(t, "202505A", NextOrderGroupID(2025, 5, []string{"202505"}))
	assert.Equal(t, "202505B", NextOrderGroupID(2025, 5, []string{"202505", "202505A"}))
	// A different month never collides with an existing batch.
	assert.Equal(t, "202506", NextOrderGroupID(2025, 6, []string{"202505"}))
	// Suffix gaps are filled like the numeric ids.
	assert.Equal(t, "202505A", NextOrderGroupID(2025, 5, []string{"202505", "202505B"}))
}

func TestNewOrderItemID(t *testing.T) {
	a := NewOrderItemID()
	b := NewOrderItemID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
