package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	count int
	err   error
}

func (s *stubClient) GetCharacter(context.Context, int64) (*Character, error) {
	panic("not used")
}

func (s *stubClient) GetTotalCount(context.Context) (int, error) {
	return s.count, s.err
}

func TestTotals_Refresh(t *testing.T) {
	totals := NewTotals()
	assert.Equal(t, 0, totals.Total())

	require.NoError(t, totals.Refresh(context.Background(), &stubClient{count: 826}))
	assert.Equal(t, 826, totals.Total())

	// A later refresh replaces the stored count.
	require.NoError(t, totals.Refresh(context.Background(), &stubClient{count: 830}))
	assert.Equal(t, 830, totals.Total())
}
