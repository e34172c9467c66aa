package meal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiviews/internal/apiclient"
	"apiviews/internal/meal"
)

func newFakeMealServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/search.php", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("s") != "pasta" {
			_ = json.NewEncoder(w).Encode(map[string]any{"meals": nil})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"meals": []any{
			map[string]any{
				"idMeal":          "52777",
				"strMeal":         "Mediterranean Pasta Salad",
				"strMealThumb":    "https://example.com/pasta.jpg",
				"strInstructions": "Bring a large saucepan of salted water to the boil.",
				"strYoutube":      "https://www.youtube.com/watch?v=e52IL8zYmaE",
				"strIngredient1":  "Farfalle",
				"strIngredient2":  "",
				"strIngredient3":  "Basil",
			},
			map[string]any{
				"idMeal":     "52999",
				"strMeal":    "Pasta No Video",
				"strYoutube": "",
			},
		}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestSearchByName(t *testing.T) {
	srv := newFakeMealServer(t)
	c := meal.NewClient(apiclient.New("meal", srv.URL))

	meals, err := c.SearchByName(context.Background(), " pasta ")
	require.NoError(t, err)
	require.Len(t, meals, 2)

	m := meals[0]
	assert.Equal(t, "52777", m.ID)
	assert.Equal(t, "Mediterranean Pasta Salad", m.Name)
	assert.Equal(t, []string{"Farfalle", "Basil"}, m.Ingredients)

	video, ok := m.Video()
	require.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/embed/e52IL8zYmaE", video)

	_, ok = meals[1].Video()
	assert.False(t, ok)
}

func TestSearchByName_NullMealsIsEmpty(t *testing.T) {
	srv := newFakeMealServer(t)
	c := meal.NewClient(apiclient.New("meal", srv.URL))

	meals, err := c.SearchByName(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
}

func TestSearchByName_TransportError(t *testing.T) {
	srv := newFakeMealServer(t)
	base := srv.URL
	srv.Close()

	c := meal.NewClient(apiclient.New("meal", base))
	_, err := c.SearchByName(context.Background(), "pasta")
	require.Error(t, err)
	assert.True(t, apiclient.IsKind(err, apiclient.KindTransport))
}

func TestEmbedURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.youtube.com/watch?v=abc", "https://www.youtube.com/embed/abc"},
		{"https://www.youtube.com/embed/abc", "https://www.youtube.com/embed/abc"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, meal.EmbedURL(tt.in))
	}
}
