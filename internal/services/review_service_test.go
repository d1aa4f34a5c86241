package services

import (
	"testing"

	"ideahub_backend/internal/models"
	"ideahub_backend/internal/services/dto"
	"ideahub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreateReview_UpdatesAverage - средний рейтинг пересчитывается после каждого отзыва
func TestCreateReview_UpdatesAverage(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestServices()

	author := createTestUser(t, db, "Author", false, "")
	idea := createTestIdea(t, db, author.ID, "Solar charger", false)

	reviewers := []*models.User{
		createTestUser(t, db, "Reviewer A", false, ""),
		createTestUser(t, db, "Reviewer B", false, ""),
		createTestUser(t, db, "Reviewer C", false, ""),
	}

	for i, rating := range []int{5, 3, 4} {
		_, err := svc.ReviewService.CreateReview(db, reviewers[i].ID, idea.ID, &dto.CreateReviewRequest{
			Rating:  rating,
			Comment: "ok",
		})
		require.NoError(t, err)
	}

	var stored models.Idea
	require.NoError(t, db.First(&stored, "id = ?", idea.ID).Error)
	assert.InDelta(t, 4.0, stored.AvgRating, 0.0001)
}

// TestCreateReview_DuplicateReviewerCounted - повторный отзыв того же
// пользователя не отбрасывается и участвует в среднем
func TestCreateReview_DuplicateReviewerCounted(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestServices()

	author := createTestUser(t, db, "Author", false, "")
	reviewer := createTestUser(t, db, "Reviewer", false, "")
	idea := createTestIdea(t, db, author.ID, "Bike lane app", false)

	_, err := svc.ReviewService.CreateReview(db, reviewer.ID, idea.ID, &dto.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = svc.ReviewService.CreateReview(db, reviewer.ID, idea.ID, &dto.CreateReviewRequest{Rating: 1})
	require.NoError(t, err)

	var stored models.Idea
	require.NoError(t, db.First(&stored, "id = ?", idea.ID).Error)
	assert.InDelta(t, 3.0, stored.AvgRating, 0.0001)
}

// TestListByIdea_EmptyAverageZero - у идеи без отзывов средний рейтинг 0.0
func TestListByIdea_EmptyAverageZero(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestServices()

	author := createTestUser(t, db, "Author", false, "")
	idea := createTestIdea(t, db, author.ID, "Community garden", false)

	resp, err := svc.ReviewService.ListByIdea(db, idea.ID)
	require.NoError(t, err)

	assert.Empty(t, resp.Reviews)
	assert.Equal(t, 0.0, resp.AvgRating)
}

func TestCreateReview_IdeaNotFound(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestServices()

	reviewer := createTestUser(t, db, "Reviewer", false, "")

	_, err := svc.ReviewService.CreateReview(db, reviewer.ID, "missing-id", &dto.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, apperrors.ErrIdeaNotFound)
}

// TestListByIdea_ReturnsReviews - список отзывов с именами авторов
func TestListByIdea_ReturnsReviews(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newTestServices()

	author := createTestUser(t, db, "Author", false, "")
	reviewer := createTestUser(t, db, "Reviewer Jane", false, "")
	idea := createTestIdea(t, db, author.ID, "Recycling bot", false)

	_, err := svc.ReviewService.CreateReview(db, reviewer.ID, idea.ID, &dto.CreateReviewRequest{
		Rating:  4,
		Comment: "Nice one",
	})
	require.NoError(t, err)

	resp, err := svc.ReviewService.ListByIdea(db, idea.ID)
	require.NoError(t, err)

	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, "Reviewer Jane", resp.Reviews[0].ReviewerName)
	assert.Equal(t, 4, resp.Reviews[0].Rating)
	assert.InDelta(t, 4.0, resp.AvgRating, 0.0001)
}
