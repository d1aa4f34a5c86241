package integration_test

import (
	"net/http"
	"testing"

	"ideahub_backend/internal/models"
	"ideahub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIdeaFlow - подача идеи, просмотр, апвоут
func TestIdeaFlow(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	token, _ := helpers.CreateAndLoginMember(t, ts)

	// --- Подача идеи ---
	createBody := map[string]interface{}{
		"title":       "Велодорожки на набережной",
		"description": "Связать парки единой сетью велодорожек",
		"tags":        "transport, city",
	}
	createRes, createBodyStr := ts.SendRequest(t, "POST", "/api/v1/ideas", token, createBody)
	assert.Equal(t, http.StatusCreated, createRes.StatusCode, "Ответ: "+createBodyStr)

	var created struct {
		ID       string `json:"id"`
		Priority bool   `json:"priority"`
	}
	parseJSON(t, createBodyStr, &created)
	assert.False(t, created.Priority, "Без бейджа идея не приоритетная")

	// --- Просмотр без авторизации ---
	getRes, getBodyStr := ts.SendRequest(t, "GET", "/api/v1/ideas/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode)
	assert.Contains(t, getBodyStr, "Велодорожки")

	// --- Анонимный апвоут ---
	upRes, _ := ts.SendRequest(t, "POST", "/api/v1/ideas/"+created.ID+"/upvote", "", nil)
	assert.Equal(t, http.StatusOK, upRes.StatusCode, "Апвоут доступен без токена")

	getRes, getBodyStr = ts.SendRequest(t, "GET", "/api/v1/ideas/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, getRes.StatusCode)
	assert.Contains(t, getBodyStr, `"upvotes":1`)
}

// TestCreateIdea_RequiresAuth - аноним не может подать идею
func TestCreateIdea_RequiresAuth(t *testing.T) {
	t.Parallel()

	ts := newServer(t)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/ideas", "", map[string]interface{}{
		"title":       "Без токена",
		"description": "не пройдет",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

// TestListIdeas_RankedOrder - выдача отсортирована по score
func TestListIdeas_RankedOrder(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	_, user := helpers.CreateAndLoginMember(t, ts)

	plain := helpers.CreateIdea(t, ts.DB, user.ID, "Plain idea")
	prioritized := helpers.CreateIdea(t, ts.DB, user.ID, "Priority idea")
	require.NoError(t, ts.DB.Model(&models.Idea{}).Where("id = ?", prioritized.ID).
		Update("priority", true).Error)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/ideas", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var list struct {
		Ideas []struct {
			ID string `json:"id"`
		} `json:"ideas"`
		Total int `json:"total"`
	}
	parseJSON(t, bodyStr, &list)

	require.Equal(t, 2, list.Total)
	assert.Equal(t, prioritized.ID, list.Ideas[0].ID)
	assert.Equal(t, plain.ID, list.Ideas[1].ID)
}

// TestSearchIdeas - фильтр по ключевому слову и тегам
func TestSearchIdeas(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	_, user := helpers.CreateAndLoginMember(t, ts)

	solar := helpers.CreateIdea(t, ts.DB, user.ID, "Solar rooftop program")
	helpers.CreateIdea(t, ts.DB, user.ID, "Dog park fencing")

	tagged := helpers.CreateIdea(t, ts.DB, user.ID, "Night bus routes")
	require.NoError(t, ts.DB.Model(&models.Idea{}).Where("id = ?", tagged.ID).
		Update("tags", "transport,night").Error)

	// По ключевому слову
	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/ideas/search?keyword=solar", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, solar.ID)
	assert.Contains(t, bodyStr, `"total":1`)

	// По тегу
	res, bodyStr = ts.SendRequest(t, "GET", "/api/v1/ideas/search?tags=transport", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, tagged.ID)
	assert.Contains(t, bodyStr, `"total":1`)
}

// TestAdminModeration - удаление и ручной приоритет доступны только админу
func TestAdminModeration(t *testing.T) {
	t.Parallel()

	ts := newServer(t)
	memberToken, member := helpers.CreateAndLoginMember(t, ts)
	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)

	idea := helpers.CreateIdea(t, ts.DB, member.ID, "Moderated idea")

	// Обычный участник получает 403
	res, bodyStr := ts.SendRequest(t, "DELETE", "/api/v1/admin/ideas/"+idea.ID, memberToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, bodyStr, "Not permitted")

	// Админ выставляет приоритет
	res, _ = ts.SendRequest(t, "PUT", "/api/v1/admin/ideas/"+idea.ID+"/priority", adminToken,
		map[string]interface{}{"priority": true})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var stored models.Idea
	require.NoError(t, ts.DB.First(&stored, "id = ?", idea.ID).Error)
	assert.True(t, stored.Priority)

	// Админ удаляет идею
	res, _ = ts.SendRequest(t, "DELETE", "/api/v1/admin/ideas/"+idea.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "GET", "/api/v1/ideas/"+idea.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
