package models

import (
	"strings"
	"unicode/utf8"

	"github.com/pulseboard/pulseboard-backend/errors"
	"github.com/pulseboard/pulseboard-backend/types"
)

// MaxMessageLength is the maximum accepted message length in characters,
// counted after trimming. Exactly 300 is accepted.
const MaxMessageLength = 300

// ValidatedFeedback is the normalized triple produced by a successful
// validation: name and message trimmed, rating coerced to an integer.
type ValidatedFeedback struct {
	Name    string
	Rating  int
	Message string
}

// ValidateFeedback applies the create rules to an untrusted payload.
// Rules run in a fixed order and the first failure wins, so callers only
// ever see the first applicable rejection:
//
//  1. name, rating and message must all be present and truthy
//  2. rating must be numeric and within [1, 5]
//  3. the trimmed message must not exceed MaxMessageLength characters
//
// A rating of 0 is rejected by rule 1, not rule 2; this ordering is
// load-bearing for wire compatibility.
func ValidateFeedback(payload *types.FeedbackCreate) (*ValidatedFeedback, *errors.AppError) {
	name := strings.TrimSpace(payload.Name)
	if name == "" || isAbsent(payload.Rating) || payload.Message == "" {
		return nil, errors.ValidationFailed(errors.CodeMissingFields,
			"Name, rating, and message are required")
	}

	rating, numeric := toNumericRating(payload.Rating)
	if !numeric || rating < 1 || rating > 5 {
		return nil, errors.ValidationFailed(errors.CodeInvalidRating,
			"Rating must be a number between 1 and 5")
	}

	message := strings.TrimSpace(payload.Message)
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, errors.ValidationFailed(errors.CodeMessageTooLong,
			"Message cannot exceed 300 characters")
	}

	return &ValidatedFeedback{
		Name:    name,
		Rating:  int(rating),
		Message: message,
	}, nil
}

// isAbsent reports whether a wire rating value counts as missing: nil,
// numeric zero, empty string and false are all absent.
func isAbsent(rating interface{}) bool {
	switch v := rating.(type) {
	case nil:
		return true
	case float64:
		return v == 0
	case int:
		return v == 0
	case int64:
		return v == 0
	case string:
		return v == ""
	case bool:
		return !v
	default:
		return false
	}
}

// toNumericRating extracts a numeric rating from the wire value. JSON
// decoding yields float64; int variants are accepted for callers that
// construct payloads directly.
func toNumericRating(rating interface{}) (float64, bool) {
	switch v := rating.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
