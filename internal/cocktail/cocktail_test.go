package cocktail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiviews/internal/apiclient"
	"apiviews/internal/cocktail"
)

var margarita = map[string]any{
	"idDrink":        "11007",
	"strDrink":       "Margarita",
	"strDrinkThumb":  "https://example.com/margarita.jpg",
	"strCategory":    "Ordinary Drink",
	"strAlcoholic":   "Alcoholic",
	"strIngredient1": "Tequila",
	"strIngredient2": nil,
	"strIngredient3": "Triple sec",
	"strIngredient4": "",
	"strIngredient5": "Lime juice",
}

type fakeCocktailAPI struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeCocktailAPI) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func newFakeCocktailServer(t *testing.T) (*httptest.Server, *fakeCocktailAPI) {
	t.Helper()
	f := &fakeCocktailAPI{}
	write := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.mu.Lock()
			f.queries = append(f.queries, r.URL.RequestURI())
			f.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/api/json/v1/1/search.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") == "margarita" || r.URL.Query().Get("f") == "m" {
			write(w, map[string]any{"drinks": []any{margarita}})
			return
		}
		write(w, map[string]any{"drinks": nil})
	})
	r.Get("/api/json/v1/1/random.php", func(w http.ResponseWriter, r *http.Request) {
		write(w, map[string]any{"drinks": []any{margarita}})
	})
	r.Get("/api/json/v1/1/filter.php", func(w http.ResponseWriter, r *http.Request) {
		write(w, map[string]any{"drinks": []any{
			map[string]any{"idDrink": "11007", "strDrink": "Margarita", "strDrinkThumb": "t.jpg"},
		}})
	})
	r.Get("/api/json/v1/1/lookup.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") == "11007" {
			write(w, map[string]any{"drinks": []any{margarita}})
			return
		}
		write(w, map[string]any{"drinks": nil})
	})
	r.Get("/api/json/v1/1/broken.php", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{"))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, f
}

func newTestClient(t *testing.T) (*cocktail.Client, *fakeCocktailAPI) {
	t.Helper()
	srv, f := newFakeCocktailServer(t)
	return cocktail.NewClient(apiclient.New("cocktail", srv.URL+"/api/json/v1/1")), f
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		mode      cocktail.FilterMode
		text      string
		wantPath  string
		wantQuery string
	}{
		{cocktail.ByName, "margarita", "search.php", "s=margarita"},
		{cocktail.ByFirstLetter, "m", "search.php", "f=m"},
		{cocktail.Random, "ignored", "random.php", ""},
		{cocktail.ByCategory, "Ordinary Drink", "filter.php", "c=Ordinary+Drink"},
		{cocktail.ByIngredient, "Gin", "filter.php", "i=Gin"},
		{cocktail.ByAlcoholic, "Non_Alcoholic", "filter.php", "a=Non_Alcoholic"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			path, q := cocktail.Endpoint(tt.mode, tt.text)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantQuery, q.Encode())
		})
	}
}

func TestShouldFetch(t *testing.T) {
	assert.True(t, cocktail.ShouldFetch(cocktail.Random, ""))
	assert.True(t, cocktail.ShouldFetch(cocktail.ByName, "gin"))
	assert.False(t, cocktail.ShouldFetch(cocktail.ByName, ""))
	assert.False(t, cocktail.ShouldFetch(cocktail.ByIngredient, "   "))
}

func TestFilterModeCycleAndParse(t *testing.T) {
	assert.Equal(t, cocktail.ByFirstLetter, cocktail.ByName.Next())
	assert.Equal(t, cocktail.ByName, cocktail.ByAlcoholic.Next())
	assert.Equal(t, cocktail.ByAlcoholic, cocktail.ByName.Prev())
	assert.False(t, cocktail.Random.TakesText())
	assert.True(t, cocktail.ByCategory.TakesText())

	for _, m := range cocktail.Modes {
		got, err := cocktail.ParseFilterMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := cocktail.ParseFilterMode("FIRSTLETTER")
	require.NoError(t, err)
	assert.Equal(t, cocktail.ByFirstLetter, got)

	_, err = cocktail.ParseFilterMode("glass")
	assert.Error(t, err)
}

func TestSearch_ByName(t *testing.T) {
	c, f := newTestClient(t)

	drinks, err := c.Search(context.Background(), cocktail.ByName, "margarita")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "Margarita", drinks[0].Name)
	assert.Equal(t, "11007", drinks[0].ID)
	assert.Equal(t, []string{"Tequila", "Triple sec", "Lime juice"}, drinks[0].Ingredients())
	assert.Equal(t, []string{"/api/json/v1/1/search.php?s=margarita"}, f.seen())
}

func TestSearch_RandomIgnoresText(t *testing.T) {
	c, f := newTestClient(t)

	drinks, err := c.Search(context.Background(), cocktail.Random, "whatever the box says")
	require.NoError(t, err)
	assert.Len(t, drinks, 1)
	assert.Equal(t, []string{"/api/json/v1/1/random.php"}, f.seen())
}

func TestSearch_NullDrinksIsEmpty(t *testing.T) {
	c, _ := newTestClient(t)

	drinks, err := c.Search(context.Background(), cocktail.ByName, "zzzz")
	require.NoError(t, err)
	assert.NotNil(t, drinks)
	assert.Empty(t, drinks)
}

func TestSearch_FilterResultsArePartial(t *testing.T) {
	c, _ := newTestClient(t)

	drinks, err := c.Search(context.Background(), cocktail.ByIngredient, "Tequila")
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.True(t, drinks[0].Partial())
	assert.Equal(t, "Unknown Category", drinks[0].CategoryOrUnknown())
	assert.Equal(t, "Unknown Type", drinks[0].AlcoholicOrUnknown())

	full, err := c.Lookup(context.Background(), drinks[0].ID)
	require.NoError(t, err)
	require.NotNil(t, full)
	assert.False(t, full.Partial())
	assert.Equal(t, "Ordinary Drink", full.CategoryOrUnknown())

	missing, err := c.Lookup(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIngredients_SparsePositions(t *testing.T) {
	raw := `{"strDrink":"Sparse","strIngredient1":"A","strIngredient3":"C","strIngredient5":"E",
		"strIngredient2":null,"strIngredient4":"","strIngredient15":null}`
	var d cocktail.Drink
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.Equal(t, []string{"A", "C", "E"}, d.Ingredients())

	// The returned slice is a copy.
	got := d.Ingredients()
	got[0] = "mutated"
	assert.Equal(t, "A", d.Ingredients()[0])
}

func TestSearch_DecodeErrorKind(t *testing.T) {
	srv, _ := newFakeCocktailServer(t)
	api := apiclient.New("cocktail", srv.URL+"/api/json/v1/1")

	var out map[string]any
	err := api.GetJSON(context.Background(), "broken.php", nil, &out)
	require.Error(t, err)
	assert.True(t, apiclient.IsKind(err, apiclient.KindDecode))
}
