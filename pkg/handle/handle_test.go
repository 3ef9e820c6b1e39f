package handle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_AddGet(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := NewStore[string]()
		h := s.Add("red")

		got, ok := s.Get(h)
		require.True(t, ok)
		require.Equal(t, "red", *got)
	})

	t.Run("zero handle is absent in a fresh store", func(t *testing.T) {
		s := NewStore[int]()
		_, ok := s.Get(Handle{})
		require.False(t, ok)
	})
}

func TestStore_GenerationalSafety(t *testing.T) {
	s := NewStore[int]()
	h1 := s.Add(1)

	require.NoError(t, s.Remove(h1))

	t.Run("removed handle resolves to absent", func(t *testing.T) {
		_, ok := s.Get(h1)
		require.False(t, ok)
	})

	h2 := s.Add(2)

	t.Run("reused slot does not resurrect the old handle", func(t *testing.T) {
		_, ok := s.Get(h1)
		require.False(t, ok, "h1 must stay absent even after its slot is reused")

		got, ok := s.Get(h2)
		require.True(t, ok)
		require.Equal(t, 2, *got)
	})

	t.Run("removing a stale handle reports ErrStale", func(t *testing.T) {
		err := s.Remove(h1)
		require.ErrorIs(t, err, ErrStale)
	})
}

func TestStore_RemoveNotFound(t *testing.T) {
	s := NewStore[int]()
	err := s.Remove(Handle{index: 5, generation: 1})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_MutationIsVisible(t *testing.T) {
	s := NewStore[struct{ N int }]()
	h := s.Add(struct{ N int }{N: 1})

	got, ok := s.GetMut(h)
	require.True(t, ok)
	got.N = 42

	got2, ok := s.Get(h)
	require.True(t, ok)
	require.Equal(t, 42, got2.N)
}

func TestHandle_StringRoundTrip(t *testing.T) {
	s := NewStore[int]()
	s.Add(1)
	require.NoError(t, s.Remove(Handle{index: 0, generation: 1}))
	h2 := s.Add(2)

	parsed, err := ParseHandle(h2.String())
	require.NoError(t, err)
	require.Equal(t, h2, parsed)

	got, ok := s.Get(parsed)
	require.True(t, ok)
	require.Equal(t, 2, *got)
}

func TestParseHandle_Malformed(t *testing.T) {
	_, err := ParseHandle("not-a-handle")
	require.Error(t, err)

	_, err = ParseHandle("abc:1")
	require.Error(t, err)

	_, err = ParseHandle("1:abc")
	require.Error(t, err)
}

func TestStore_Len(t *testing.T) {
	s := NewStore[int]()
	require.Equal(t, 0, s.Len())

	h1 := s.Add(1)
	s.Add(2)
	require.Equal(t, 2, s.Len())

	require.NoError(t, s.Remove(h1))
	require.Equal(t, 1, s.Len())
}
