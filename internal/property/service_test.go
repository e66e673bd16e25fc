package property

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/propnest/internal/shared"
)

type brokenRepository struct{ Repository }

func (brokenRepository) List(context.Context) ([]Property, error) {
	return nil, storeErr("list properties", errors.New("connection refused"))
}

func TestServiceCreateValidates(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := []struct {
		name string
		in   Property
		msg  string
	}{
		{"missing address", Property{Price: 1, Size: 1}, "address is required"},
		{"negative price", Property{Address: "a", Price: -1, Size: 1}, "price must be >= 0"},
		{"negative size", Property{Address: "a", Price: 1, Size: -0.5}, "size must be >= 0"},
		{"long description", Property{Address: "a", Description: strings.Repeat("x", 4097)}, "description must be at most 4096 characters"},
	}
	for _, tc := range cases {
		_, err := svc.Create(ctx, tc.in)
		require.ErrorIs(t, err, shared.ErrValidation, tc.name)
		assert.Contains(t, err.Error(), tc.msg, tc.name)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestServiceCreateIgnoresCallerID(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, Property{ID: 99, Address: "123 Main St", Price: 250000, Size: 120})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	_, err = svc.Get(ctx, 99)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceUpdateValidatesPatch(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	created, err := svc.Create(ctx, Property{Address: "123 Main St", Price: 250000, Size: 120})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, Patch{Price: ptr(-5.0)})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.Update(ctx, created.ID, Patch{Address: ptr("")})
	require.ErrorIs(t, err, shared.ErrValidation)
	assert.Contains(t, err.Error(), "address must not be empty")

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestServiceListPaged(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, Property{Address: "x", Price: 1, Size: 1})
		require.NoError(t, err)
	}

	page, err := svc.ListPaged(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Content, 10)
	assert.Equal(t, int64(15), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 10, page.Size)

	last, err := svc.ListPaged(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, last.Content, 5)

	for _, bad := range [][2]int{{-1, 10}, {0, 0}, {0, MaxPageSize + 1}} {
		_, err := svc.ListPaged(ctx, bad[0], bad[1])
		require.ErrorIs(t, err, shared.ErrValidation, "page=%d size=%d", bad[0], bad[1])
	}
}

func TestServicePropagatesStoreErrors(t *testing.T) {
	svc := NewService(brokenRepository{})
	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, shared.ErrStoreUnavailable)
}
