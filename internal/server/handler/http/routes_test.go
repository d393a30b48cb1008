package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atinyakov/travelguide/internal/middleware"
	"github.com/atinyakov/travelguide/internal/repository"
	"github.com/atinyakov/travelguide/internal/service"
	"github.com/atinyakov/travelguide/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestServer wires the full router over a fresh in-memory storage seeded
// with the demo user, the way cmd/server does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	storage := repository.NewMemoryStorage()
	hash, err := service.HashPassword("password")
	require.NoError(t, err)
	demo, err := repository.SeedUser(context.Background(), storage, repository.DemoUser(hash))
	require.NoError(t, err)

	v := validation.New()
	logger := zap.NewNop()
	trips := service.NewTripService(storage, v)
	bookings := service.NewBookingService(storage, v)
	accounts := service.NewAccountService(storage, storage.Sessions(), time.Hour, v)
	destinations, err := service.NewDestinationService()
	require.NoError(t, err)

	router := NewRouter(Handlers{
		Auth: &AuthHandler{
			AccountService: accounts,
			TripService:    trips,
			BookingService: bookings,
			Logger:         logger,
		},
		Trips:        &TripHandler{TripService: trips, DefaultUserID: demo.ID, Logger: logger},
		Bookings:     &BookingHandler{BookingService: bookings, DefaultUserID: demo.ID, Logger: logger},
		Contact:      &ContactHandler{ContactService: service.NewContactService(storage, v), Logger: logger},
		Destinations: &DestinationHandler{Catalog: destinations},
		Health:       &HealthHandler{Storage: storage, Logger: logger},
	}, accounts, middleware.NewMetrics(), logger)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, client *http.Client, method, url, body string) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestRouter_BookingExample(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/bookings",
		`{"destination":"Venice, Italy","startDate":"2024-06-01","endDate":"2024-06-08","groupSize":2,"addOns":["guide"],"totalCost":850,"status":"pending"}`)
	require.Equal(t, http.StatusCreated, code, body)

	booking := body["booking"].(map[string]any)
	assert.NotNil(t, booking["id"])
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, float64(1), booking["userId"], "anonymous bookings belong to the demo user")

	code, body = doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/bookings/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Venice, Italy", body["booking"].(map[string]any)["destination"])
}

func TestRouter_BookingEndBeforeStartIsAccepted(t *testing.T) {
	srv := newTestServer(t)

	code, _ := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/bookings",
		`{"destination":"Petra, Jordan","startDate":"2024-06-08","endDate":"2024-06-01","groupSize":2,"totalCost":400}`)
	assert.Equal(t, http.StatusCreated, code)
}

func TestRouter_TripEmptyDestinations(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/trips",
		`{"name":"Nowhere","destinations":[],"duration":"short","travelStyle":"solo","budget":"economy"}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid trip data", body["message"])

	errs := body["errors"].([]any)
	require.NotEmpty(t, errs)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.(map[string]any)["field"].(string))
	}
	assert.Contains(t, fields, "destinations")
}

func TestRouter_TripRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/trips", `{
		"name":"Trip to japan","destinations":["japan"],"duration":"short","travelStyle":"solo","budget":"moderate",
		"startDate":"2024-06-01T00:00:00.000Z",
		"itinerary":{"destination":"japan","duration":"short","days":[
			{"id":"day-1","title":"Arrival","description":"Check in","insight":{"type":"cultural","text":"Bow"}}]}
	}`)
	require.Equal(t, http.StatusCreated, code, body)
	created := body["trip"].(map[string]any)

	code, body = doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/trips/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, created, body["trip"])

	code, body = doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/api/trips/2", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Trip not found", body["message"])
}

func TestRouter_DestinationsAreByteIdentical(t *testing.T) {
	srv := newTestServer(t)

	fetch := func() []byte {
		resp, err := srv.Client().Get(srv.URL + "/api/destinations")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return b
	}

	first := fetch()
	assert.True(t, bytes.HasPrefix(first, []byte(`{"destinations":[{"id":1,"name":"Kyoto, Japan"`)), string(first))
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, fetch())
	}
}

func TestRouter_Contact(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/contact",
		`{"name":"Ann","email":"ann@example.com","message":"Is Petra open in August?"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Ann", body["message"].(map[string]any)["name"])

	code, body = doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/contact", `{"name":"Ann","email":"nope","message":""}`)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid message data", body["message"])
	assert.Len(t, body["errors"], 2)
}

func TestRouter_RejectsNonJSONBodies(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/api/contact", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestRouter_SessionFlow(t *testing.T) {
	srv := newTestServer(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := srv.Client()
	client.Jar = jar

	code, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/user", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/register",
		`{"username":"demo","password":"secret12","email":"demo2@example.com"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, body := doJSON(t, client, http.MethodPost, srv.URL+"/api/register",
		`{"username":"marco","password":"secret12","email":"marco@example.com"}`)
	require.Equal(t, http.StatusCreated, code, body)
	userID := body["user"].(map[string]any)["id"]
	assert.Equal(t, float64(2), userID)

	code, body = doJSON(t, client, http.MethodPost, srv.URL+"/api/trips",
		`{"name":"Peru","destinations":["machu-picchu"],"duration":"long","travelStyle":"family","budget":"luxury"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, userID, body["trip"].(map[string]any)["userId"])

	code, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/user/trips", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["trips"], 1)

	code, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/user/bookings", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{}, body["bookings"])

	code, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/logout", "")
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = doJSON(t, client, http.MethodGet, srv.URL+"/api/user", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/login", `{"username":"demo","password":"password"}`)
	assert.Equal(t, http.StatusOK, code)
	code, body = doJSON(t, client, http.MethodGet, srv.URL+"/api/user", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "demo", body["user"].(map[string]any)["username"])
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv.Client(), http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `travelguide_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestRouter_RegisterPasswordTooManyBytes(t *testing.T) {
	srv := newTestServer(t)

	code, body := doJSON(t, srv.Client(), http.MethodPost, srv.URL+"/api/register",
		`{"username":"alice","password":"`+strings.Repeat("é", 40)+`","email":"alice@example.com"}`)
	require.Equal(t, http.StatusBadRequest, code, body)
	assert.Equal(t, "Invalid user data", body["message"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].(map[string]any)["field"])
}
