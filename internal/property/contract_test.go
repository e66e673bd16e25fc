package property

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propnest/propnest/internal/shared"
)

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T, repo Repository, items ...Property) []Property {
	t.Helper()
	out := make([]Property, 0, len(items))
	for _, p := range items {
		created, err := repo.Create(context.Background(), p)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func sampleListings() []Property {
	return []Property{
		{Address: "123 Main St", Price: 250000, Size: 120, Description: "Beautiful house"},
		{Address: "45 Elm Avenue", Price: 100000, Size: 80, Description: "Starter home"},
		{Address: "9 MAIN ROAD", Price: 300000, Size: 200, Description: "Corner lot"},
		{Address: "77 Oak Lane", Price: 450000, Size: 310, Description: "Large garden"},
		{Address: "1 50%_Off Blvd", Price: 99999.5, Size: 60, Description: "Odd name"},
	}
}

// runRepositoryContract exercises behaviour every Repository implementation must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("create assigns ids and get returns the record", func(t *testing.T) {
		repo := newRepo(t)
		in := Property{Address: "123 Main St", Price: 250000, Size: 120, Description: "Beautiful house"}

		created, err := repo.Create(ctx, in)
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		want := in
		want.ID = created.ID
		assert.Equal(t, want, got)

		other, err := repo.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, other.ID)
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Get(ctx, 4242)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update merges only supplied fields", func(t *testing.T) {
		repo := newRepo(t)
		created := seed(t, repo, sampleListings()[0])[0]

		updated, err := repo.Update(ctx, created.ID, Patch{Price: ptr(300000.0)})
		require.NoError(t, err)

		want := created
		want.Price = 300000
		assert.Equal(t, want, updated)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		full, err := repo.Update(ctx, created.ID, Patch{
			Address:     ptr("1 New Rd"),
			Price:       ptr(1.0),
			Size:        ptr(2.0),
			Description: ptr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, Property{ID: created.ID, Address: "1 New Rd", Price: 1, Size: 2, Description: ""}, full)
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Update(ctx, 4242, Patch{Price: ptr(1.0)})
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		created := seed(t, repo, sampleListings()[0])[0]

		require.NoError(t, repo.Delete(ctx, created.ID))
		require.NoError(t, repo.Delete(ctx, created.ID))
		require.NoError(t, repo.Delete(ctx, 4242))

		_, err := repo.Get(ctx, created.ID)
		require.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		repo := newRepo(t)
		empty, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		created := seed(t, repo, sampleListings()...)
		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, created, all)
	})

	t.Run("page slices with totals", func(t *testing.T) {
		repo := newRepo(t)
		var items []Property
		for i := 0; i < 15; i++ {
			items = append(items, Property{Address: fmt.Sprintf("%d Test St", i), Price: float64(i * 1000), Size: 50})
		}
		created := seed(t, repo, items...)

		first, total, err := repo.Page(ctx, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
		assert.Equal(t, created[:10], first)

		second, _, err := repo.Page(ctx, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, created[10:], second)

		beyond, total, err := repo.Page(ctx, 5, 10)
		require.NoError(t, err)
		assert.Empty(t, beyond)
		assert.Equal(t, int64(15), total)

		for _, page := range []int{math.MaxInt / 3, math.MaxInt / 100, math.MaxInt} {
			far, total, err := repo.Page(ctx, page, 100)
			require.NoError(t, err, "page %d", page)
			assert.Empty(t, far, "page %d", page)
			assert.Equal(t, int64(15), total, "page %d", page)
		}
	})

	t.Run("address search folds non-ascii case", func(t *testing.T) {
		repo := newRepo(t)
		created := seed(t, repo,
			Property{Address: "Calle ÑANDÚ 5", Price: 1, Size: 1},
			Property{Address: "Große Straße 12", Price: 1, Size: 1},
			Property{Address: "10 Plain Rd", Price: 1, Size: 1},
		)
		nandu, strasse := created[0], created[1]

		for _, needle := range []string{"ÑANDÚ", "ñandú", "Ñandú", "calle ñ"} {
			got, err := repo.Search(ctx, Filter{Address: ptr(needle)})
			require.NoError(t, err, needle)
			assert.Equal(t, []Property{nandu}, got, needle)
		}
		got, err := repo.Search(ctx, Filter{Address: ptr("GROSSE")})
		require.NoError(t, err)
		assert.Empty(t, got)
		got, err = repo.Search(ctx, Filter{Address: ptr("STRASSE")})
		require.NoError(t, err)
		assert.Empty(t, got)
		got, err = repo.Search(ctx, Filter{Address: ptr("GROSSE STRAßE")})
		require.NoError(t, err)
		assert.Empty(t, got)
		got, err = repo.Search(ctx, Filter{Address: ptr("GROßE")})
		require.NoError(t, err)
		assert.Equal(t, []Property{strasse}, got)

		renamed, err := repo.Update(ctx, nandu.ID, Patch{Address: ptr("Avenida ÁRBOL 3")})
		require.NoError(t, err)
		got, err = repo.Search(ctx, Filter{Address: ptr("árbol")})
		require.NoError(t, err)
		assert.Equal(t, []Property{renamed}, got)
		got, err = repo.Search(ctx, Filter{Address: ptr("ñandú")})
		require.NoError(t, err)
		assert.Empty(t, got)

		_, err = repo.Update(ctx, strasse.ID, Patch{Price: ptr(2.0)})
		require.NoError(t, err)
		got, err = repo.Search(ctx, Filter{Address: ptr("große")})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, strasse.ID, got[0].ID)
	})

	t.Run("search composes criteria", func(t *testing.T) {
		repo := newRepo(t)
		created := seed(t, repo, sampleListings()...)
		mainSt, elm, mainRoad, oak, odd := created[0], created[1], created[2], created[3], created[4]

		cases := []struct {
			name   string
			filter Filter
			want   []Property
		}{
			{"no criteria", Filter{}, created},
			{"blank address", Filter{Address: ptr("  ")}, created},
			{"price range inclusive", Filter{MinPrice: ptr(100000.0), MaxPrice: ptr(300000.0)}, []Property{mainSt, elm, mainRoad}},
			{"price range and address", Filter{Address: ptr("Main"), MinPrice: ptr(100000.0), MaxPrice: ptr(300000.0)}, []Property{mainSt, mainRoad}},
			{"case insensitive address", Filter{Address: ptr("main"), MinPrice: ptr(200000.0), MaxPrice: ptr(300000.0)}, []Property{mainSt, mainRoad}},
			{"min price excludes", Filter{Address: ptr("123 main"), MinPrice: ptr(260000.0)}, []Property{}},
			{"size bounds", Filter{MinSize: ptr(120.0), MaxSize: ptr(200.0)}, []Property{mainSt, mainRoad}},
			{"max only", Filter{MaxPrice: ptr(99999.5)}, []Property{odd}},
			{"wildcards are literal", Filter{Address: ptr("50%_")}, []Property{odd}},
			{"percent alone is literal", Filter{Address: ptr("%")}, []Property{odd}},
			{"all criteria", Filter{Address: ptr("oak"), MinPrice: ptr(1.0), MaxPrice: ptr(500000.0), MinSize: ptr(300.0), MaxSize: ptr(310.0)}, []Property{oak}},
		}
		for _, tc := range cases {
			got, err := repo.Search(ctx, tc.filter)
			require.NoError(t, err, tc.name)
			assert.Equal(t, tc.want, got, tc.name)
		}
	})
}
