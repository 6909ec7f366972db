package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"defaults applied", Pagination{}, Pagination{Page: 1, Limit: 10}},
		{"negative page", Pagination{Page: -3, Limit: 20}, Pagination{Page: 1, Limit: 20}},
		{"limit capped", Pagination{Page: 2, Limit: 500}, Pagination{Page: 2, Limit: 100}},
		{"valid untouched", Pagination{Page: 4, Limit: 25}, Pagination{Page: 4, Limit: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, Pagination{Page: 5, Limit: 10}.Offset())
}

func TestTotalPages(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
	assert.Equal(t, 3, p.TotalPages(30))
}
