package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"canteen-queue-api/engine"
	"canteen-queue-api/insights"
	"canteen-queue-api/models"
	"canteen-queue-api/payments"
	"canteen-queue-api/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the handlers against an in-memory store. Auth
// middleware is deliberately absent: these tests exercise handler
// behavior, not token parsing.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	Init(
		engine.New(store.NewMemoryStore()),
		insights.NewClient(""),
		payments.NewClient("", ""),
	)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/canteens", RegisterCanteen)
	api.GET("/canteens/:id", GetCanteen)
	api.POST("/tokens", CreateToken)
	api.POST("/orders/online", CreateOnlineOrder)
	api.GET("/tokens/:id", GetTokenStatus)
	api.GET("/canteens/:id/position/:tokenId", GetQueuePosition)
	api.GET("/canteens/:id/queue/campus", GetCampusQueue)
	api.PUT("/tokens/:tokenId/ready", MarkOrderReady)
	api.PUT("/tokens/:tokenId/complete", CompleteOrder)
	api.PUT("/tokens/:tokenId/complete-with-annotation", CompleteOrderWithAnnotation)
	api.GET("/canteens/:id/stats", GetStats)
	api.POST("/payments/orders", CreatePaymentOrder)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]json.RawMessage{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func registerCanteen(t *testing.T, r *gin.Engine) models.Canteen {
	t.Helper()
	w, out := doJSON(t, r, http.MethodPost, "/api/canteens", gin.H{"name": "VITFC", "campus": "Vellore"})
	require.Equal(t, http.StatusCreated, w.Code)

	var canteen models.Canteen
	require.NoError(t, json.Unmarshal(out["canteen"], &canteen))
	require.NotEmpty(t, canteen.ID)
	return canteen
}

func TestRegisterCanteenAssignsTheme(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)
	assert.Equal(t, "VITFC", canteen.Name)
	assert.Contains(t, models.ThemeGradients, canteen.ThemeColor)
}

func TestCreateTokenFlow(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)

	w, out := doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{
		"canteen_id": canteen.ID,
		"food_item":  "samosa",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var token models.Token
	require.NoError(t, json.Unmarshal(out["token"], &token))
	assert.Equal(t, "A-001", token.TokenNumber)
	assert.Equal(t, models.StatusWaiting, token.Status)

	// Position of the freshly issued token
	w, out = doJSON(t, r, http.MethodGet, "/api/canteens/"+canteen.ID+"/position/"+token.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", string(out["position"]))

	// Staff marks it ready; it leaves the WAITING ranking
	w, _ = doJSON(t, r, http.MethodPut, "/api/tokens/"+token.ID+"/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, out = doJSON(t, r, http.MethodGet, "/api/canteens/"+canteen.ID+"/position/"+token.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", string(out["position"]))
}

func TestCreateTokenValidation(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)

	w, _ := doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{"food_item": "samosa"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "canteen_id is required")

	w, _ = doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{"canteen_id": "nope", "food_item": "samosa"})
	assert.Equal(t, http.StatusNotFound, w.Code, "unknown canteen")

	w, _ = doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{"canteen_id": canteen.ID, "food_item": "sushi"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown food item")
}

func TestCreateOnlineOrderRequiresPaymentID(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)

	w, _ := doJSON(t, r, http.MethodPost, "/api/orders/online", gin.H{
		"canteen_id": canteen.ID,
		"food_item":  "coffee",
		"user_email": "a@b.edu",
		"user_phone": "9999999999",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out := doJSON(t, r, http.MethodPost, "/api/orders/online", gin.H{
		"canteen_id": canteen.ID,
		"food_item":  "coffee",
		"user_email": "a@b.edu",
		"user_phone": "9999999999",
		"payment_id": "pay_123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var token models.Token
	require.NoError(t, json.Unmarshal(out["token"], &token))
	assert.Equal(t, models.QueueOnline, token.QueueType)
	assert.Equal(t, models.PaymentCompleted, token.PaymentStatus)
}

func TestMarkReadyRejectsCompletedToken(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)

	_, out := doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{
		"canteen_id": canteen.ID,
		"food_item":  "samosa",
	})
	var token models.Token
	require.NoError(t, json.Unmarshal(out["token"], &token))

	w, _ := doJSON(t, r, http.MethodPut, "/api/tokens/"+token.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/tokens/"+token.ID+"/ready", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCompleteRejectsCompletedToken(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)

	_, out := doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{
		"canteen_id": canteen.ID,
		"food_item":  "samosa",
	})
	var token models.Token
	require.NoError(t, json.Unmarshal(out["token"], &token))

	w, _ := doJSON(t, r, http.MethodPut, "/api/tokens/"+token.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/tokens/"+token.ID+"/complete", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "completed is terminal")
}

func TestAnnotatedCompleteRecordsHistoryOnce(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)

	_, out := doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{
		"canteen_id": canteen.ID,
		"food_item":  "samosa",
	})
	var token models.Token
	require.NoError(t, json.Unmarshal(out["token"], &token))

	w, _ := doJSON(t, r, http.MethodPut, "/api/tokens/"+token.ID+"/complete-with-annotation", gin.H{"reasoning": "quick handover"})
	require.Equal(t, http.StatusOK, w.Code)

	// A second completion must neither re-stamp completedAt nor append
	// another history entry.
	w, _ = doJSON(t, r, http.MethodPut, "/api/tokens/"+token.ID+"/complete-with-annotation", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	stored, err := Queue.TokenByID(token.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	history, err := Queue.AllHistory()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "samosa", history[0].FoodItem)
}

func TestStatsEndpoint(t *testing.T) {
	r := newTestRouter()
	canteen := registerCanteen(t, r)

	for i := 0; i < 2; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/api/tokens", gin.H{
			"canteen_id": canteen.ID,
			"food_item":  "samosa",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, out := doJSON(t, r, http.MethodGet, "/api/canteens/"+canteen.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats models.QueueStats
	require.NoError(t, json.Unmarshal(out["stats"], &stats))
	assert.Equal(t, 2, stats.TotalOrdersToday)
	assert.Equal(t, 2, stats.ActiveQueueLength)
	assert.Equal(t, "12:00 PM - 1:00 PM", stats.PeakHour)
}

func TestPaymentProxyUnconfigured(t *testing.T) {
	r := newTestRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/api/payments/orders", gin.H{
		"amount":   2500,
		"currency": "INR",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/payments/orders", gin.H{"currency": "INR"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
