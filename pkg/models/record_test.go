package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alihamza/reedit-backend/pkg/models"
)

func TestRecordFromMap(t *testing.T) {
	r := models.RecordFromMap(map[string]any{
		"transaction_id": "TX123",
		"amount":         "Rs. 1,234.50",
		"all_text":       "some text",
		"phone_numbers":  []any{"+923001234567", "03001234567", "+923001234567"},
		"confidence":     0.9,
		"extra_field":    "dropped",
	})
	assert.Equal(t, "TX123", r.TransactionID)
	assert.Equal(t, "Rs. 1,234.50", r.Amount)
	assert.Equal(t, "some text", r.AllText)
	assert.Equal(t, []string{"+923001234567", "03001234567"}, r.PhoneNumbers)
	assert.Empty(t, r.Sender)
	assert.Empty(t, r.Status)
}

func TestRecordFromMapNullValues(t *testing.T) {
	// The vision service uses JSON null for absent fields, which decodes to nil.
	r := models.RecordFromMap(map[string]any{
		"transaction_id": nil,
		"amount":         nil,
		"phone_numbers":  nil,
		"all_text":       "raw",
	})
	assert.Empty(t, r.TransactionID)
	assert.Empty(t, r.Amount)
	assert.Empty(t, r.PhoneNumbers)
	assert.Equal(t, "raw", r.AllText)
}

func TestRecordFromMapEmpty(t *testing.T) {
	r := models.RecordFromMap(map[string]any{})
	assert.Equal(t, models.PaymentRecord{}, r)
}
