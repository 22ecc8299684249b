package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/geofence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Geocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Avenida Paulista, 1000, São Paulo - SP", r.URL.Query().Get("q"))
		assert.Equal(t, "br", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "timeclock-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"-23.5649","lon":"-46.6521"}]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, "timeclock-test", "br", 2*time.Second)
	point, err := client.Geocode(context.Background(), "Avenida Paulista, 1000, São Paulo - SP")

	require.NoError(t, err)
	assert.InDelta(t, -23.5649, point.Latitude, 1e-9)
	assert.InDelta(t, -46.6521, point.Longitude, 1e-9)
}

func TestNominatimClient_Geocode_Miss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, "", "", time.Second)
	_, err := client.Geocode(context.Background(), "Rua que não existe, 0")

	assert.ErrorIs(t, err, geofence.ErrAddressNotFound)
}

func TestNominatimClient_Geocode_EmptyAddress(t *testing.T) {
	client := NewNominatimClient("http://127.0.0.1:1", "", "", time.Second)
	_, err := client.Geocode(context.Background(), "")

	assert.ErrorIs(t, err, geofence.ErrAddressNotFound)
}

func TestNominatimClient_Geocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL, "", "", time.Second)
	_, err := client.Geocode(context.Background(), "Avenida Paulista, 1000")

	require.Error(t, err)
	assert.NotErrorIs(t, err, geofence.ErrAddressNotFound)
}
