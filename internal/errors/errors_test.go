package errors

import (
	"fmt"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	sentinel := NewSentinel("resource not found")
	err := Wrap(sentinel, "load case", slog.String("case_id", "midnight-gala"))

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, "load case: resource not found", err.Error())

	// Sentinels with equal messages stay distinct.
	require.NotErrorIs(t, err, NewSentinel("resource not found"))
}

func TestSlogError(t *testing.T) {
	sentinel := NewSentinel("resource not found")
	err := Wrap(sentinel, "load case", slog.String("case_id", "midnight-gala"))

	attr := SlogError(err)
	require.Equal(t, "error", attr.Key)

	group := attr.Value.Group()
	require.Contains(t, group, slog.String("msg", "load case: resource not found"))

	// The annotations resolve to the wrap site and its attributes.
	annotationsIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "annotations"
	})
	require.NotEqual(t, -1, annotationsIdx)
	annotations := group[annotationsIdx].Value.Resolve().Group()
	require.Contains(t, annotations, slog.String("case_id", "midnight-gala"))

	sourceIdx := slices.IndexFunc(annotations, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.NotEqual(t, -1, sourceIdx)
	require.Contains(t, annotations[sourceIdx].Value.String(), "errors_test.go")
}

func TestSlogErrorPlain(t *testing.T) {
	attr := SlogError(NewSentinel("boom"))
	require.Equal(t, "error", attr.Key)
	require.Contains(t, attr.Value.Group(), slog.String("msg", "boom"))
}

func TestJoin(t *testing.T) {
	first := NewSentinel("first")
	second := NewSentinel("second")
	joined := Join(first, second)

	require.ErrorIs(t, joined, first)
	require.ErrorIs(t, joined, second)
	require.NoError(t, Join(nil, nil))
}

func TestAs(t *testing.T) {
	err := Wrap(NewSentinel("inner"), "outer", slog.Int("count", 3))

	var ann annotation
	require.True(t, As(err, &ann))
	require.Equal(t, "outer", ann.Error())
}

func TestUnwrap(t *testing.T) {
	sentinel := NewSentinel("inner")
	err := fmt.Errorf("outer: %w", sentinel)

	require.Equal(t, sentinel, Unwrap(err))
	require.NoError(t, Unwrap(sentinel))
}
