// internal/wardrobe/client_test.go
package wardrobe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/models"
)

func TestItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wardrobe", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "user-1", r.Header.Get("X-User-ID"))

		json.NewEncoder(w).Encode([]models.WardrobeItem{
			{ID: "item-1", Name: "Denim Jacket", Type: "Outerwear", Color: "Blue", WearCount: 4, IsFavorite: true},
			{ID: "item-2", Name: "White Tee", Type: "Tops", Color: "White"},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	items, err := client.Items(context.Background(), models.User{ID: "user-1", Token: "token-1"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Denim Jacket", items[0].Name)
	assert.True(t, items[0].IsFavorite)
}

func TestItemsServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	items, err := client.Items(context.Background(), models.User{ID: "user-1"})
	assert.Nil(t, items)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeWardrobeFetchFailed))
}

func TestItemsMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, time.Second)
	_, err := client.Items(context.Background(), models.User{ID: "user-1"})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeWardrobeFetchFailed))
}
