package marginal

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/fanoviz/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ctx := context.Background()
	s := testutil.FixtureSpace(t)

	t.Run("by name", func(t *testing.T) {
		got, err := Resolve(ctx, s, ByName("momentum"))
		require.NoError(t, err)
		assert.Equal(t, Resolved{Dimension: 2, Name: "momentum"}, got)
	})

	t.Run("by index", func(t *testing.T) {
		got, err := Resolve(ctx, s, ByIndex(3))
		require.NoError(t, err)
		assert.Equal(t, Resolved{Dimension: 3, Name: "layers"}, got)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Resolve(ctx, s, ByName("dropout"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownParameter))
		assert.EqualError(t, err, "parameter dropout not known")

		var unknown *UnknownParameterError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "dropout", unknown.Name)
	})

	t.Run("index out of range propagates the space error", func(t *testing.T) {
		_, err := Resolve(ctx, s, ByIndex(9))
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnknownParameter))
	})
}

func TestParseRef(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Ref
		wantErr string
	}{
		{name: "name", in: "lr", want: ByName("lr")},
		{name: "index", in: "#2", want: ByIndex(2)},
		{name: "name with slash", in: "net/lr", want: ByName("net/lr")},
		{name: "bad index", in: "#x", wantErr: "invalid dimension reference"},
		{name: "negative index", in: "#-1", wantErr: "invalid dimension reference"},
		{name: "empty", in: "", wantErr: "empty parameter reference"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRef(tc.in)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, got.String())
		})
	}
}

func TestIsSkippable(t *testing.T) {
	assert.True(t, IsSkippable(&UnknownParameterError{Name: "x"}))
	assert.True(t, IsSkippable(&WrongKindError{Name: "x"}))
	assert.False(t, IsSkippable(errors.New("disk on fire")))
	assert.False(t, IsSkippable(nil))
}
