package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetUser(t *testing.T) {
	t.Run("decodes the upstream schema", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user/alice", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Accept"))

			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "svc", user)
			assert.Equal(t, "secret", pass)

			fmt.Fprint(w, `{
				"status": "active",
				"projekt": "pn69za",
				"daten": {
					"vorname": "Alice",
					"nachname": "Muster",
					"geschlecht": "w",
					"emailadressen": [
						{"adresse": "alice.muster@example.org"},
						"alice@legacy.example.org"
					]
				}
			}`)
		}))
		defer srv.Close()

		client := NewClient(Settings{BaseURL: srv.URL, User: "svc", Password: "secret"})
		record, err := client.GetUser(context.Background(), "alice")
		require.NoError(t, err)

		assert.Equal(t, "active", record.Status)
		assert.Equal(t, "pn69za", record.Project)
		assert.Equal(t, "Alice", record.Details.FirstName)
		require.Len(t, record.Details.Emails, 2)
		assert.Equal(t, "alice.muster@example.org", record.Details.Emails[0].Address)
		assert.Equal(t, "alice@legacy.example.org", record.Details.Emails[1].Address)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(Settings{BaseURL: srv.URL})
		_, err := client.GetUser(context.Background(), "ghost")
		assert.ErrorContains(t, err, "404")
	})
}
