package resource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/on-the-ground/resource_ive_go/resource"
)

func TestBoth_AcquiresAndReleasesBothSides(t *testing.T) {
	j := &journal{}
	ctx := context.Background()

	r := resource.Both(tracked(j, "left"), tracked(j, "right"))

	pair, err := resource.Use(ctx, r, func(_ context.Context, p resource.Pair[string, string]) (resource.Pair[string, string], error) {
		j.add("used")
		return p, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "left", pair.First)
	assert.Equal(t, "right", pair.Second)

	entries := j.list()
	require.Len(t, entries, 5)
	assert.ElementsMatch(t, []string{"acquire-left", "acquire-right"}, entries[:2])
	assert.Equal(t, "used", entries[2])
	assert.ElementsMatch(t, []string{"release-left", "release-right"}, entries[3:])
}

func TestBoth_PartialAcquireFailureReleasesAcquiredSide(t *testing.T) {
	j := &journal{}
	ctx := context.Background()

	leftAcquired := make(chan struct{})
	left := resource.Make(
		func(_ context.Context) (string, error) {
			j.add("acquire-left")
			close(leftAcquired)
			return "left", nil
		},
		func(_ context.Context, _ string) error {
			j.add("release-left")
			return nil
		},
	)
	right := resource.Make(
		func(_ context.Context) (string, error) {
			<-leftAcquired
			return "", errBoom
		},
		func(_ context.Context, _ string) error {
			t.Fatal("no release is owed for a failed acquisition")
			return nil
		},
	)

	_, err := resource.Use(ctx, resource.Both(left, right), func(_ context.Context, p resource.Pair[string, string]) (struct{}, error) {
		t.Fatal("body must not run")
		return struct{}{}, nil
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"acquire-left", "release-left"}, j.list())
}

func TestBoth_ConcurrentReleaseFailuresAllRetained(t *testing.T) {
	ctx := context.Background()

	errLeft := errors.New("left release failed")
	errRight := errors.New("right release failed")

	left := resource.Make(
		func(_ context.Context) (string, error) { return "left", nil },
		func(_ context.Context, _ string) error { return errLeft },
	)
	right := resource.Make(
		func(_ context.Context) (string, error) { return "right", nil },
		func(_ context.Context, _ string) error { return errRight },
	)

	_, err := resource.Use(ctx, resource.Both(left, right), func(_ context.Context, _ resource.Pair[string, string]) (struct{}, error) {
		return struct{}{}, nil
	})
	require.Error(t, err)
	// Both failures survive; ordering between them is not defined.
	assert.ErrorIs(t, err, errLeft)
	assert.ErrorIs(t, err, errRight)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestBoth_ComposesWithBind(t *testing.T) {
	j := &journal{}
	ctx := context.Background()

	r := resource.Bind(tracked(j, "outer"),
		func(string) resource.Resource[resource.Pair[string, string]] {
			return resource.Both(tracked(j, "left"), tracked(j, "right"))
		})

	_, err := resource.Use(ctx, r, func(_ context.Context, p resource.Pair[string, string]) (struct{}, error) {
		j.add("used")
		return struct{}{}, nil
	})
	require.NoError(t, err)

	entries := j.list()
	require.Len(t, entries, 7)
	assert.Equal(t, "acquire-outer", entries[0])
	assert.ElementsMatch(t, []string{"acquire-left", "acquire-right"}, entries[1:3])
	assert.Equal(t, "used", entries[3])
	// The pair releases before the outer resource it was built on.
	assert.ElementsMatch(t, []string{"release-left", "release-right"}, entries[4:6])
	assert.Equal(t, "release-outer", entries[6])
}
