package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mealbridge-be/config"
	"mealbridge-be/controllers"
	"mealbridge-be/geo"
	"mealbridge-be/handover"
	"mealbridge-be/models"
	"mealbridge-be/repository"
	"mealbridge-be/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupRouter(t *testing.T) (*gin.Engine, *repository.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.InitLogger()

	memory := repository.NewSeededMemory(time.Now())
	manager := handover.NewManager(handover.WithCompletionDelay(time.Millisecond))
	controllers.Setup(memory, memory.Notifications(), manager, geo.EnvLocator{})

	r := gin.New()
	routes.DonationRoutes(r)
	routes.HandoverRoutes(r)
	routes.NotificationRoutes(r)
	routes.LeaderboardRoutes(r)
	return r, memory
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func firstAvailable(t *testing.T, memory *repository.Memory) models.Donation {
	t.Helper()
	donations, err := memory.List(context.Background())
	require.NoError(t, err)
	for _, d := range donations {
		if d.Status == models.Available {
			return d
		}
	}
	t.Fatal("no available donation in seed")
	return models.Donation{}
}

func reservationBody() map[string]any {
	return map[string]any{
		"message":       "Picking up for the shelter",
		"pickupType":    "self",
		"preferredTime": "18:00",
		"contactName":   "Hope Foundation",
		"contactPhone":  "+1 555 0100",
	}
}

func TestListDonationsFoodTypeFilter(t *testing.T) {
	r, _ := setupRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/donation?foodType=veg", nil)
	require.Equal(t, http.StatusOK, w.Code)

	donations := body["donations"].([]any)
	assert.Equal(t, float64(2), body["totalDonations"])
	for _, raw := range donations {
		d := raw.(map[string]any)
		assert.Equal(t, "veg", d["foodType"])
	}
}

func TestListDonationsUrgentOnly(t *testing.T) {
	r, _ := setupRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/donation?urgentOnly=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Seed expiries are +2h, +45m, and +4h; only the first two qualify.
	donations := body["donations"].([]any)
	require.Len(t, donations, 2)
	for _, raw := range donations {
		d := raw.(map[string]any)
		assert.NotEqual(t, "15 meals", d["quantity"])
	}
}

func TestListDonationsSortQuantity(t *testing.T) {
	r, _ := setupRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/donation?sort=quantity", nil)
	require.Equal(t, http.StatusOK, w.Code)

	donations := body["donations"].([]any)
	require.Len(t, donations, 3)
	assert.Equal(t, "25 meals", donations[0].(map[string]any)["quantity"])
	assert.Equal(t, "15 meals", donations[1].(map[string]any)["quantity"])
	assert.Equal(t, "10 meals", donations[2].(map[string]any)["quantity"])
}

func TestGetDonation(t *testing.T) {
	r, memory := setupRouter(t)
	target := firstAvailable(t, memory)

	w, body := doJSON(t, r, http.MethodGet, "/api/donation/"+target.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, body["countdown"])
	assert.NotEmpty(t, body["donorDisplayName"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/donation/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/donation/not-a-hex-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReserveDonation(t *testing.T) {
	r, memory := setupRouter(t)
	target := firstAvailable(t, memory)

	w, body := doJSON(t, r, http.MethodPost, "/api/donation/"+target.ID.Hex()+"/reserve", reservationBody())
	require.Equal(t, http.StatusOK, w.Code)
	donation := body["donation"].(map[string]any)
	assert.Equal(t, "reserved", donation["status"])
	assert.Equal(t, "Hope Foundation", donation["reservedBy"])

	// Claiming again conflicts.
	w, _ = doJSON(t, r, http.MethodPost, "/api/donation/"+target.ID.Hex()+"/reserve", reservationBody())
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown ids surface as an explicit not-found.
	w, _ = doJSON(t, r, http.MethodPost, "/api/donation/"+primitive.NewObjectID().Hex()+"/reserve", reservationBody())
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The donor got exactly one reservation notification.
	notifications, err := memory.Notifications().List(context.Background(), primitive.NilObjectID, repository.FilterAll)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifReservation, notifications[0].Type)
}

func TestReserveDonationValidation(t *testing.T) {
	r, memory := setupRouter(t)
	target := firstAvailable(t, memory)

	body := reservationBody()
	delete(body, "contactName")

	w, _ := doJSON(t, r, http.MethodPost, "/api/donation/"+target.ID.Hex()+"/reserve", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A blocked submission leaves the record untouched.
	got, err := memory.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Available, got.Status)
}

func TestCreateDonation(t *testing.T) {
	r, _ := setupRouter(t)

	input := map[string]any{
		"donorName":          "Sunrise Bakery",
		"isVeg":              true,
		"mealType":           "snacks",
		"preparation":        "cooked",
		"quantity":           "30 pastries",
		"expiryTime":         time.Now().Add(6 * time.Hour).Format(time.RFC3339),
		"location":           "12 Baker Street",
		"readyToHandOver":    true,
		"packedHygienically": true,
		"consent":            true,
	}

	w, body := doJSON(t, r, http.MethodPost, "/api/donation/create", input)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, "veg", body["foodType"])

	w, listBody := doJSON(t, r, http.MethodGet, "/api/donation?quantity=pastries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), listBody["totalDonations"])
}

func TestCreateDonationRequiresConsent(t *testing.T) {
	r, _ := setupRouter(t)

	input := map[string]any{
		"donorName":  "Sunrise Bakery",
		"isVeg":      false,
		"mealType":   "dinner",
		"quantity":   "5 meals",
		"expiryTime": time.Now().Add(time.Hour).Format(time.RFC3339),
		"location":   "12 Baker Street",
		"consent":    false,
	}

	w, _ := doJSON(t, r, http.MethodPost, "/api/donation/create", input)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetectLocationFallback(t *testing.T) {
	t.Setenv("DEFAULT_LATITUDE", "")
	t.Setenv("DEFAULT_LONGITUDE", "")
	r, _ := setupRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/location/detect", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["detected"])
	assert.Contains(t, body["message"], "enter manually")
}

func TestDetectLocationWithPosition(t *testing.T) {
	t.Setenv("DEFAULT_LATITUDE", "12.9716")
	t.Setenv("DEFAULT_LONGITUDE", "77.5946")
	r, _ := setupRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/location/detect", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["detected"])
	coords := body["coordinates"].(map[string]any)
	assert.InDelta(t, 12.9716, coords["latitude"], 1e-9)
}

func TestLeaderboard(t *testing.T) {
	r, memory := setupRouter(t)
	target := firstAvailable(t, memory)

	_, err := memory.Reserve(context.Background(), target.ID, models.ReservationRequest{
		PickupType:   models.SelfPickup,
		ContactName:  "Hope Foundation",
		ContactPhone: "+1 555 0100",
	})
	require.NoError(t, err)
	_, err = memory.MarkCollected(context.Background(), target.ID)
	require.NoError(t, err)

	w, body := doJSON(t, r, http.MethodGet, "/api/leaderboard?window=allTime&category=overall", nil)
	require.Equal(t, http.StatusOK, w.Code)

	entries := body["leaderboard"].([]any)
	require.NotEmpty(t, entries)

	top := entries[0].(map[string]any)
	assert.Equal(t, float64(1), top["rank"])
	assert.Equal(t, "Food Hero", top["badge"])

	previous := float64(0)
	for i, raw := range entries {
		e := raw.(map[string]any)
		score := e["impactScore"].(float64)
		if i > 0 {
			assert.LessOrEqual(t, score, previous)
		}
		previous = score
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/leaderboard?window=hourly", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationFlow(t *testing.T) {
	r, memory := setupRouter(t)
	target := firstAvailable(t, memory)

	w, _ := doJSON(t, r, http.MethodPost, "/api/donation/"+target.ID.Hex()+"/reserve", reservationBody())
	require.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(t, r, http.MethodGet, "/api/notification?filter=unread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["unreadCount"])

	notifications := body["notifications"].([]any)
	require.Len(t, notifications, 1)
	id := notifications[0].(map[string]any)["id"].(string)

	w, _ = doJSON(t, r, http.MethodPost, "/api/notification/"+id+"/read", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, r, http.MethodGet, "/api/notification?filter=unread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["unreadCount"])

	w, _ = doJSON(t, r, http.MethodDelete, "/api/notification/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/notification/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
