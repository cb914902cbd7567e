package vision_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"

	"github.com/alihamza/reedit-backend/pkg/vision"
)

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{
						{"text": text},
					},
				},
			},
		},
	}
}

func getClient(t *testing.T) *vision.Client {
	c, err := vision.New("test-key", "")
	if err != nil {
		t.Fatalf("unable to create client: %v", err)
	}
	c.SetHttpTransport(gock.NewTransport())
	return c
}

func TestExtractParsesJSON(t *testing.T) {
	defer gock.Off()
	gock.New("https://generativelanguage.googleapis.com").
		Post("/v1beta/models/gemini-1.5-flash:generateContent").
		Reply(http.StatusOK).
		JSON(geminiReply(`Here is the extracted data:
{
  "transaction_id": "TX42",
  "amount": "Rs. 1,500.00",
  "all_text": "JazzCash\nRs. 1,500.00"
}`))

	c := getClient(t)
	m := c.Extract(context.Background(), []byte("img"), "image/png")
	assert.Equal(t, "TX42", m["transaction_id"])
	assert.Equal(t, "Rs. 1,500.00", m["amount"])
	assert.Equal(t, "JazzCash\nRs. 1,500.00", m["all_text"])
	assert.NotContains(t, m, "error")
}

func TestExtractNoJSONSpan(t *testing.T) {
	defer gock.Off()
	gock.New("https://generativelanguage.googleapis.com").
		Post("/v1beta/models/gemini-1.5-flash:generateContent").
		Reply(http.StatusOK).
		JSON(geminiReply("I could not read the image, sorry."))

	c := getClient(t)
	m := c.Extract(context.Background(), []byte("img"), "image/png")
	assert.Equal(t, "I could not read the image, sorry.", m["all_text"])
	assert.NotContains(t, m, "error")
}

func TestExtractMalformedJSONSpan(t *testing.T) {
	defer gock.Off()
	reply := `{"transaction_id": "TX42", "amount": }`
	gock.New("https://generativelanguage.googleapis.com").
		Post("/v1beta/models/gemini-1.5-flash:generateContent").
		Reply(http.StatusOK).
		JSON(geminiReply(reply))

	c := getClient(t)
	m := c.Extract(context.Background(), []byte("img"), "image/png")
	// Softened failure: the whole reply becomes all_text.
	assert.Equal(t, reply, m["all_text"])
	assert.NotContains(t, m, "transaction_id")
}

func TestExtractServiceError(t *testing.T) {
	defer gock.Off()
	gock.New("https://generativelanguage.googleapis.com").
		Post("/v1beta/models/gemini-1.5-flash:generateContent").
		Reply(http.StatusTooManyRequests).
		JSON(map[string]any{"error": map[string]any{"message": "quota exceeded"}})

	c := getClient(t)
	m := c.Extract(context.Background(), []byte("img"), "image/png")
	assert.Contains(t, m, "error")
	assert.NotContains(t, m, "all_text")
}

func TestExtractEmptyCandidates(t *testing.T) {
	defer gock.Off()
	gock.New("https://generativelanguage.googleapis.com").
		Post("/v1beta/models/gemini-1.5-flash:generateContent").
		Reply(http.StatusOK).
		JSON(map[string]any{"candidates": []any{}})

	c := getClient(t)
	m := c.Extract(context.Background(), []byte("img"), "image/png")
	assert.Contains(t, m, "error")
}

func TestUnconfiguredClient(t *testing.T) {
	c, err := vision.New("", "")
	assert.Nil(t, err)
	assert.False(t, c.Available())

	m := c.Extract(context.Background(), []byte("img"), "image/png")
	assert.Empty(t, m)
}
