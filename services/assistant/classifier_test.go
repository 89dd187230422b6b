package assistant

import (
	"context"
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFlow(t *testing.T) {
	cases := []struct {
		message string
		want    models.Flow
	}{
		{"I need a CBC test", models.FlowLab},
		{"book a blood test for tomorrow", models.FlowLab},
		{"is an MRI available?", models.FlowLab},
		{"I have a fever", models.FlowDoctor},
		{"find me a dermatologist", models.FlowDoctor},
		{"book Dr. Patel at 5pm", models.FlowDoctor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DetectFlow(tc.message), "%q", tc.message)
	}
}

func TestDecodeIntentSearchWithFilters(t *testing.T) {
	intent := DecodeIntent(`{"type": "search", "query": "Dermatologist", "filters": {"max_fees": 500, "min_rating": 4}}`)

	search, ok := intent.(models.SearchIntent)
	require.True(t, ok)
	assert.Equal(t, "Dermatologist", search.Query)
	require.NotNil(t, search.Filters.MaxFee)
	assert.Equal(t, 500, *search.Filters.MaxFee)
	require.NotNil(t, search.Filters.MinRating)
	assert.Equal(t, 4.0, *search.Filters.MinRating)
	assert.Nil(t, search.Filters.MaxPrice)
	assert.Nil(t, search.Filters.HomeCollection)
}

func TestDecodeIntentStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"type\": \"slots\", \"query\": \"Dr. Patel\"}\n```"

	intent := DecodeIntent(raw)
	slots, ok := intent.(models.SlotsIntent)
	require.True(t, ok)
	assert.Equal(t, "Dr. Patel", slots.Subject)
}

func TestDecodeIntentQueryAsArray(t *testing.T) {
	intent := DecodeIntent(`{"type": "search", "query": ["Complete", "Blood", "Count"]}`)

	search, ok := intent.(models.SearchIntent)
	require.True(t, ok)
	assert.Equal(t, "Complete Blood Count", search.Query)
}

func TestDecodeIntentToleratesMissingAndWrongTypes(t *testing.T) {
	// Null query, filters as a number, missing everything else.
	intent := DecodeIntent(`{"type": "filter", "query": null, "filters": 7}`)
	filter, ok := intent.(models.FilterIntent)
	require.True(t, ok)
	assert.Empty(t, filter.Query)
	assert.Equal(t, models.SearchFilters{}, filter.Filters)

	// Wrongly-typed slot id degrades to empty, not a panic.
	intent = DecodeIntent(`{"type": "booking", "query": "Dr. X", "slot_id": 42}`)
	book, ok := intent.(models.BookingIntent)
	require.True(t, ok)
	assert.Equal(t, "Dr. X", book.Subject)
	assert.Empty(t, book.SlotID)
}

func TestDecodeIntentUnknownTypeFallsBackToChat(t *testing.T) {
	intent := DecodeIntent(`{"type": "teleport", "response": "hm"}`)
	chat, ok := intent.(models.ChatIntent)
	require.True(t, ok)
	assert.Equal(t, "hm", chat.Reply)

	// Garbage is a chat intent too, never an error.
	intent = DecodeIntent("not json at all")
	_, ok = intent.(models.ChatIntent)
	assert.True(t, ok)
}

func TestDecodeIntentCollectionTypes(t *testing.T) {
	cases := []struct {
		raw  string
		want models.CollectionType
	}{
		{`{"type": "availability", "collection_type": "home"}`, models.CollectionHome},
		{`{"type": "availability", "collection_type": "home_collection"}`, models.CollectionHome},
		{`{"type": "availability", "collection_type": "lab"}`, models.CollectionLabVisit},
		{`{"type": "availability", "collection_type": "lab_visit"}`, models.CollectionLabVisit},
		{`{"type": "availability"}`, ""},
	}
	for _, tc := range cases {
		intent := DecodeIntent(tc.raw)
		avail, ok := intent.(models.AvailabilityIntent)
		require.True(t, ok, tc.raw)
		assert.Equal(t, tc.want, avail.CollectionType, tc.raw)
	}
}

func TestDecodeIntentCartVariants(t *testing.T) {
	// "cart" is the older vocabulary for add_to_cart.
	intent := DecodeIntent(`{"type": "cart", "test_id": "test_blood_001", "lab_id": "lab_001"}`)
	add, ok := intent.(models.AddToCartIntent)
	require.True(t, ok)
	assert.Equal(t, "test_blood_001", add.TestID)
	assert.Equal(t, "lab_001", add.LabID)

	intent = DecodeIntent(`{"type": "remove_from_cart", "test_id": "test_blood_001"}`)
	remove, ok := intent.(models.RemoveFromCartIntent)
	require.True(t, ok)
	assert.Equal(t, "test_blood_001", remove.TestID)

	intent = DecodeIntent(`{"type": "view_cart"}`)
	_, ok = intent.(models.ViewCartIntent)
	assert.True(t, ok)
}

// stubLLM returns a canned reply, optionally failing first.
type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestGeminiClassifierDecodesModelReply(t *testing.T) {
	classifier := NewGeminiClassifier(&stubLLM{reply: `{"type": "search", "query": "Cardiologist"}`})

	intent, err := classifier.Classify(context.Background(), models.FlowDoctor,
		Request{SessionID: "s", Message: "find a heart doctor"}, models.SessionState{})
	require.NoError(t, err)

	search, ok := intent.(models.SearchIntent)
	require.True(t, ok)
	assert.Equal(t, "Cardiologist", search.Query)
}

func TestGeminiClassifierDegradesTransportFailureToSearch(t *testing.T) {
	classifier := NewGeminiClassifier(&stubLLM{err: assert.AnError})

	intent, err := classifier.Classify(context.Background(), models.FlowDoctor,
		Request{SessionID: "s", Message: "find a heart doctor"}, models.SessionState{})
	require.NoError(t, err)

	search, ok := intent.(models.SearchIntent)
	require.True(t, ok)
	assert.Equal(t, "find a heart doctor", search.Query)
}
