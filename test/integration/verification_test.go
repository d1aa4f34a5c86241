package integration_test

import (
	"net/http"
	"testing"

	"ideahub_backend/internal/models"
	"ideahub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVerificationFlow - полный цикл: заявка, одобрение, бейдж и приоритеты
func TestVerificationFlow(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	userToken, user := helpers.CreateAndLoginMember(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	// Идея, созданная ДО верификации - будет продвинута ретроактивно
	oldIdea := helpers.CreateIdea(t, ts.DB, user.ID, "Pre-verification idea")

	// --- Подача заявки ---
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/verification", userToken,
		map[string]interface{}{
			"claim":   "Городской архитектор",
			"details": "Диплом и 5 лет практики",
			"proofs":  []string{"diploma.pdf"},
		})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var submitted struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	parseJSON(t, bodyStr, &submitted)
	assert.Equal(t, "pending", submitted.Status)

	// --- Заявка видна в админской очереди ---
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/admin/verification/pending", adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, submitted.ID)

	// --- Одобрение ---
	res, bodyStr = ts.SendRequest(t, "PUT", "/api/v1/admin/verification/"+submitted.ID+"/approve", adminToken,
		map[string]interface{}{"admin_note": "документы в порядке"})
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	// Бейдж выдан
	var storedUser models.User
	require.NoError(t, ts.DB.First(&storedUser, "id = ?", user.ID).Error)
	assert.Equal(t, "Городской архитектор (Verified)", storedUser.Badge)

	// Старая идея продвинута
	var storedIdea models.Idea
	require.NoError(t, ts.DB.First(&storedIdea, "id = ?", oldIdea.ID).Error)
	assert.True(t, storedIdea.Priority)

	// --- Новая идея получает приоритет сразу ---
	res, bodyStr = ts.SendRequest(t, "POST", "/api/v1/ideas", userToken,
		map[string]interface{}{
			"title":       "Post-verification idea",
			"description": "подана уже с бейджем",
		})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Contains(t, bodyStr, `"priority":true`)
}

// TestVerification_Reject - отказ без побочных эффектов
func TestVerification_Reject(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	userToken, user := helpers.CreateAndLoginMember(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	idea := helpers.CreateIdea(t, ts.DB, user.ID, "Stays plain")

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/verification", userToken,
		map[string]interface{}{"claim": "Эксперт"})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var submitted struct {
		ID string `json:"id"`
	}
	parseJSON(t, bodyStr, &submitted)

	res, _ = ts.SendRequest(t, "PUT", "/api/v1/admin/verification/"+submitted.ID+"/reject", adminToken,
		map[string]interface{}{"admin_note": "нет подтверждений"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var storedUser models.User
	require.NoError(t, ts.DB.First(&storedUser, "id = ?", user.ID).Error)
	assert.Empty(t, storedUser.Badge)

	var storedIdea models.Idea
	require.NoError(t, ts.DB.First(&storedIdea, "id = ?", idea.ID).Error)
	assert.False(t, storedIdea.Priority)

	// Повторное рассмотрение решенной заявки - конфликт
	res, _ = ts.SendRequest(t, "PUT", "/api/v1/admin/verification/"+submitted.ID+"/approve", adminToken,
		map[string]interface{}{})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

// TestVerification_AdminOnly - очередь и решения закрыты от обычных участников
func TestVerification_AdminOnly(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	userToken, _ := helpers.CreateAndLoginMember(t, ts)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/admin/verification/pending", userToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, "PUT", "/api/v1/admin/verification/some-id/approve", userToken,
		map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestVerification_MyRequests - пользователь видит свои заявки
func TestVerification_MyRequests(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	userToken, _ := helpers.CreateAndLoginMember(t, ts)

	for _, claim := range []string{"Первая", "Вторая"} {
		res, _ := ts.SendRequest(t, "POST", "/api/v1/verification", userToken,
			map[string]interface{}{"claim": claim})
		require.Equal(t, http.StatusCreated, res.StatusCode)
	}

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/verification/my", userToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Первая")
	assert.Contains(t, bodyStr, "Вторая")
	assert.Contains(t, bodyStr, `"total":2`)
}
