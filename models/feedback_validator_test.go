package models

import (
	"strings"
	"testing"

	"github.com/pulseboard/pulseboard-backend/errors"
	"github.com/pulseboard/pulseboard-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFeedback_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload types.FeedbackCreate
	}{
		{"all missing", types.FeedbackCreate{}},
		{"no name", types.FeedbackCreate{Rating: float64(5), Message: "hi"}},
		{"no rating", types.FeedbackCreate{Name: "John", Message: "hi"}},
		{"no message", types.FeedbackCreate{Name: "John", Rating: float64(5)}},
		{"empty name", types.FeedbackCreate{Name: "", Rating: float64(5), Message: "hi"}},
		{"whitespace-only name", types.FeedbackCreate{Name: "   ", Rating: float64(5), Message: "hi"}},
		{"zero rating is falsy", types.FeedbackCreate{Name: "John", Rating: float64(0), Message: "hi"}},
		{"empty string rating", types.FeedbackCreate{Name: "John", Rating: "", Message: "hi"}},
		{"null rating", types.FeedbackCreate{Name: "John", Rating: nil, Message: "hi"}},
		{"false rating", types.FeedbackCreate{Name: "John", Rating: false, Message: "hi"}},
		{"empty message", types.FeedbackCreate{Name: "John", Rating: float64(5), Message: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFeedback(&tt.payload)
			require.NotNil(t, err)
			assert.Equal(t, errors.CodeMissingFields, err.Code)
			assert.Equal(t, "Name, rating, and message are required", err.Message)
		})
	}
}

func TestValidateFeedback_InvalidRating(t *testing.T) {
	tests := []struct {
		name   string
		rating interface{}
	}{
		{"string rating", "invalid"},
		{"numeric string", "5"},
		{"below range", float64(-1)},
		{"above range", float64(6)},
		{"far above range", float64(100)},
		{"true is not numeric", true},
		{"fractional below one", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := types.FeedbackCreate{Name: "John", Rating: tt.rating, Message: "hi"}
			_, err := ValidateFeedback(&payload)
			require.NotNil(t, err)
			assert.Equal(t, errors.CodeInvalidRating, err.Code)
			assert.Equal(t, "Rating must be a number between 1 and 5", err.Message)
		})
	}
}

func TestValidateFeedback_ZeroRatingFailsPresenceFirst(t *testing.T) {
	// 0 is both falsy and out of range; rule order makes it MISSING_FIELDS.
	payload := types.FeedbackCreate{Name: "John", Rating: float64(0), Message: "hi"}
	_, err := ValidateFeedback(&payload)
	require.NotNil(t, err)
	assert.Equal(t, errors.CodeMissingFields, err.Code)
}

func TestValidateFeedback_MessageLengthBoundary(t *testing.T) {
	t.Run("exactly 300 accepted", func(t *testing.T) {
		payload := types.FeedbackCreate{
			Name:    "John",
			Rating:  float64(5),
			Message: strings.Repeat("a", 300),
		}
		validated, err := ValidateFeedback(&payload)
		require.Nil(t, err)
		assert.Len(t, validated.Message, 300)
	})

	t.Run("301 rejected", func(t *testing.T) {
		payload := types.FeedbackCreate{
			Name:    "John",
			Rating:  float64(5),
			Message: strings.Repeat("a", 301),
		}
		_, err := ValidateFeedback(&payload)
		require.NotNil(t, err)
		assert.Equal(t, errors.CodeMessageTooLong, err.Code)
		assert.Equal(t, "Message cannot exceed 300 characters", err.Message)
	})

	t.Run("length counted after trimming", func(t *testing.T) {
		// 300 characters padded with whitespace still fits.
		payload := types.FeedbackCreate{
			Name:    "John",
			Rating:  float64(5),
			Message: "   " + strings.Repeat("a", 300) + "   ",
		}
		validated, err := ValidateFeedback(&payload)
		require.Nil(t, err)
		assert.Len(t, validated.Message, 300)
	})

	t.Run("length counted in characters not bytes", func(t *testing.T) {
		payload := types.FeedbackCreate{
			Name:    "John",
			Rating:  float64(5),
			Message: strings.Repeat("é", 300),
		}
		_, err := ValidateFeedback(&payload)
		assert.Nil(t, err)
	})
}

func TestValidateFeedback_Normalization(t *testing.T) {
	payload := types.FeedbackCreate{
		Name:    "  John Doe  ",
		Rating:  float64(5),
		Message: "  hi  ",
	}
	validated, err := ValidateFeedback(&payload)
	require.Nil(t, err)
	assert.Equal(t, "John Doe", validated.Name)
	assert.Equal(t, "hi", validated.Message)
	assert.Equal(t, 5, validated.Rating)
}

func TestValidateFeedback_RatingCoercion(t *testing.T) {
	tests := []struct {
		name   string
		rating interface{}
		want   int
	}{
		{"float64 from JSON", float64(4), 4},
		{"fractional truncated", 4.7, 4},
		{"int", int(3), 3},
		{"int64", int64(2), 2},
		{"boundary low", float64(1), 1},
		{"boundary high", float64(5), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := types.FeedbackCreate{Name: "John", Rating: tt.rating, Message: "hi"}
			validated, err := ValidateFeedback(&payload)
			require.Nil(t, err)
			assert.Equal(t, tt.want, validated.Rating)
		})
	}
}

func TestValidateFeedback_FirstFailureWins(t *testing.T) {
	// Missing name and oversized message together: presence is reported.
	payload := types.FeedbackCreate{
		Rating:  float64(9),
		Message: strings.Repeat("a", 400),
	}
	_, err := ValidateFeedback(&payload)
	require.NotNil(t, err)
	assert.Equal(t, errors.CodeMissingFields, err.Code)
}
