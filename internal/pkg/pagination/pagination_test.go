package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowClampsToCollection(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		n         int
		wantStart int
		wantEnd   int
	}{
		{"first page", Params{Page: 1, Limit: 10, Offset: 0}, 25, 0, 10},
		{"last partial page", Params{Page: 3, Limit: 10, Offset: 20}, 25, 20, 25},
		{"page beyond collection", Params{Page: 9, Limit: 10, Offset: 80}, 25, 25, 25},
		{"empty collection", Params{Page: 1, Limit: 10, Offset: 0}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.params.Window(tt.n)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}
