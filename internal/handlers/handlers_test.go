package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/habitown/habitown-backend/internal/config"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/middleware"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/logger"
	"github.com/habitown/habitown-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestAPI wires an in-memory database and a router with the same
// middleware stack the server uses.
func setupTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.AppConfig = &config.Config{
		JWTSecret:       "test-secret",
		GatewaySecret:   "gateway-secret",
		StreakMedalDays: 30,
		GroupBonusCoins: 10,
		ConversionFloor: 2,
		AdminIDs:        "1",
	}
	logger.Init("development")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	database.DB = db
	database.Redis = nil

	r := gin.New()
	r.Use(middleware.ErrorHandlerMiddleware())

	api := r.Group("/api")
	{
		api.POST("/auth/token", ExchangeToken)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware())
		{
			authed.GET("/points", GetBalances)
			authed.POST("/points/convert", ConvertPoints)
			authed.GET("/habits", ListHabits)
			authed.POST("/habits", CreateHabit)
			authed.POST("/habits/:id/toggle", ToggleCompletion)

			admin := authed.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			admin.POST("/recalculate", Recalculate)
		}
	}
	return r
}

// seedMember creates a grouped user and returns a bearer token for them.
func seedMember(t *testing.T, id int64) string {
	t.Helper()

	var group models.Group
	if err := database.DB.First(&group).Error; err != nil {
		group = models.Group{Name: "Test Town"}
		require.NoError(t, database.DB.Create(&group).Error)
	}

	user := models.User{ID: id, Username: fmt.Sprintf("user%d", id), GroupID: &group.ID}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := utils.GenerateToken(id)
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExchangeTokenAndGetBalances(t *testing.T) {
	r := setupTestAPI(t)

	chatID := int64(-7)
	w := doJSON(r, http.MethodPost, "/api/auth/token", "", gin.H{
		"secret": "gateway-secret",
		"identity": gin.H{
			"userId":    int64(42),
			"username":  "roundtrip",
			"chatId":    chatID,
			"chatTitle": "Town",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var exchange struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exchange))
	require.NotEmpty(t, exchange.Token)

	w = doJSON(r, http.MethodGet, "/api/points", exchange.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Balances models.Balances `json:"balances"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Balances.Physical)
}

func TestExchangeTokenRejectsBadSecret(t *testing.T) {
	r := setupTestAPI(t)

	w := doJSON(r, http.MethodPost, "/api/auth/token", "", gin.H{
		"secret":   "nope",
		"identity": gin.H{"userId": int64(42)},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTestAPI(t)

	w := doJSON(r, http.MethodGet, "/api/points", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/points", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestToggleAndConvertRoundTrip(t *testing.T) {
	r := setupTestAPI(t)
	token := seedMember(t, 1)

	w := doJSON(r, http.MethodPost, "/api/habits", token, gin.H{
		"name":      "Morning run",
		"pointType": "physical",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var habit models.Habit
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit))

	for i := 0; i < 2; i++ {
		date := fmt.Sprintf("2026-08-%02d", 10+i)
		w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/habits/%d/toggle", habit.ID), token, gin.H{"date": date})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// 2 physical points on hand; an odd conversion is refused.
	w = doJSON(r, http.MethodPost, "/api/points/convert", token, gin.H{
		"from": "physical", "to": "arts", "amount": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/points/convert", token, gin.H{
		"from": "physical", "to": "arts", "amount": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var converted struct {
		Credited int             `json:"credited"`
		Balances models.Balances `json:"balances"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &converted))
	assert.Equal(t, 1, converted.Credited)
	assert.Equal(t, 0, converted.Balances.Physical)
	assert.Equal(t, 1, converted.Balances.Arts)
}

func TestConvertInsufficientReturns422(t *testing.T) {
	r := setupTestAPI(t)
	token := seedMember(t, 1)

	w := doJSON(r, http.MethodPost, "/api/points/convert", token, gin.H{
		"from": "physical", "to": "arts", "amount": 4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRecalculateIsAdminOnly(t *testing.T) {
	r := setupTestAPI(t)
	adminToken := seedMember(t, 1)
	memberToken := seedMember(t, 2)

	w := doJSON(r, http.MethodPost, "/api/admin/recalculate", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/api/admin/recalculate", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Diffs []json.RawMessage `json:"diffs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Diffs, 2)
}
