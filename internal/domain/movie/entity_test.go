//go:build unit

package movie_test

import (
	"testing"
	"time"

	"gin-jobqueue/internal/domain/movie"
	"gin-jobqueue/internal/pkg/ptr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

func TestNewMovie(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		m, err := movie.NewMovie(movie.Props{
			Title:       "  Alien ",
			Genre:       []string{"sf", " ", "horror"},
			ReleaseYear: ptr.To[int32](1979),
			Cast:        nil,
		}, now)
		require.NoError(t, err)

		assert.Equal(t, "Alien", m.Title())
		assert.Equal(t, []string{"sf", "horror"}, m.Genre())
		assert.NotNil(t, m.Cast())
		assert.Empty(t, m.Cast())
		assert.Equal(t, now, m.CreatedAt())
	})

	cases := []struct {
		name  string
		props movie.Props
		errIs error
	}{
		{name: "タイトル空NG", props: movie.Props{Title: " "}, errIs: movie.ErrTitleRequired},
		{name: "公開年が古すぎNG", props: movie.Props{Title: "x", ReleaseYear: ptr.To[int32](1800)}, errIs: movie.ErrInvalidReleaseYear},
		{name: "公開年が未来すぎNG", props: movie.Props{Title: "x", ReleaseYear: ptr.To[int32](2100)}, errIs: movie.ErrInvalidReleaseYear},
		{name: "評価が範囲外NG", props: movie.Props{Title: "x", AverageRating: 11}, errIs: movie.ErrInvalidRating},
		{name: "公開年なしOK", props: movie.Props{Title: "x"}},
		{name: "1888年OK", props: movie.Props{Title: "x", ReleaseYear: ptr.To[int32](1888)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := movie.NewMovie(tc.props, now)
			if tc.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, m)
				return
			}
			require.Nil(t, m)
			require.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestUpdate(t *testing.T) {
	m, err := movie.NewMovie(movie.Props{Title: "Alien"}, now)
	require.NoError(t, err)

	next := m.Props()
	next.Title = ""
	require.ErrorIs(t, m.Update(next, now), movie.ErrTitleRequired)
	assert.Equal(t, "Alien", m.Title())

	next.Title = "Aliens"
	next.Director = "James Cameron"
	require.NoError(t, m.Update(next, now.Add(time.Hour)))
	assert.Equal(t, "Aliens", m.Title())
	assert.Equal(t, "James Cameron", m.Director())
	assert.Equal(t, now.Add(time.Hour), m.UpdatedAt())
}
