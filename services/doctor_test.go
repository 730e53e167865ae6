package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/models"
)

func reviewsWithRatings(ratings ...int) []models.Review {
	reviews := make([]models.Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, models.Review{PatientID: primitive.NewObjectID(), Rating: r})
	}
	return reviews
}

func TestRecomputeRating(t *testing.T) {
	assert.Equal(t, models.RatingSummary{}, RecomputeRating(nil))

	summary := RecomputeRating(reviewsWithRatings(5, 3, 4))
	assert.Equal(t, 3, summary.Count)
	assert.InDelta(t, 4.0, summary.Average, 1e-9)

	// adding a 2 to [5,3,4] gives (5+3+4+2)/4 = 3.5, recomputed from the full list
	summary = RecomputeRating(reviewsWithRatings(5, 3, 4, 2))
	assert.Equal(t, 4, summary.Count)
	assert.InDelta(t, 3.5, summary.Average, 1e-9)
}

func TestUpsertReviewReplacesExisting(t *testing.T) {
	patient := primitive.NewObjectID()
	reviews := []models.Review{
		{PatientID: patient, Rating: 2},
		{PatientID: primitive.NewObjectID(), Rating: 5},
	}

	updated := UpsertReview(reviews, models.Review{PatientID: patient, Rating: 4})
	require.Len(t, updated, 2)
	assert.Equal(t, 4, updated[0].Rating)

	added := UpsertReview(reviews, models.Review{PatientID: primitive.NewObjectID(), Rating: 1})
	assert.Len(t, added, 3)
}

func TestNormalizeAvailability(t *testing.T) {
	got, err := NormalizeAvailability([]string{"Monday", "FRIDAY", "monday"})
	require.NoError(t, err)
	assert.Equal(t, []string{"monday", "friday"}, got)

	got, err = NormalizeAvailability("tuesday, thursday")
	require.NoError(t, err)
	assert.Equal(t, []string{"tuesday", "thursday"}, got)

	_, err = NormalizeAvailability([]string{"funday"})
	assert.Error(t, err)
	_, err = NormalizeAvailability(7)
	assert.Error(t, err)
}
