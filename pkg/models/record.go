package models

// PaymentRecord is the canonical set of fields extracted from a payment
// receipt. The key set is fixed: consumers may assume every field exists,
// an empty string means the field was not found.
type PaymentRecord struct {
	TransactionID string   `json:"transaction_id"`
	Amount        string   `json:"amount"`
	Date          string   `json:"date"`
	Sender        string   `json:"sender"`
	Receiver      string   `json:"receiver"`
	Fee           string   `json:"fee"`
	PaymentMethod string   `json:"payment_method"`
	Status        string   `json:"status"`
	PhoneNumbers  []string `json:"phone_numbers"`
	Reference     string   `json:"reference"`
	BankInfo      string   `json:"bank_info"`
	Location      string   `json:"location"`
	AllText       string   `json:"all_text"`
}

// RecordFromMap builds a PaymentRecord from a loosely-typed mapping, such as
// the JSON object returned by the vision service. Unknown keys are dropped,
// non-string values are ignored and phone numbers are deduplicated by exact
// string match.
func RecordFromMap(m map[string]any) PaymentRecord {
	r := PaymentRecord{
		TransactionID: stringValue(m, "transaction_id"),
		Amount:        stringValue(m, "amount"),
		Date:          stringValue(m, "date"),
		Sender:        stringValue(m, "sender"),
		Receiver:      stringValue(m, "receiver"),
		Fee:           stringValue(m, "fee"),
		PaymentMethod: stringValue(m, "payment_method"),
		Status:        stringValue(m, "status"),
		Reference:     stringValue(m, "reference"),
		BankInfo:      stringValue(m, "bank_info"),
		Location:      stringValue(m, "location"),
		AllText:       stringValue(m, "all_text"),
	}

	seen := map[string]bool{}
	switch numbers := m["phone_numbers"].(type) {
	case []string:
		for _, n := range numbers {
			if n != "" && !seen[n] {
				seen[n] = true
				r.PhoneNumbers = append(r.PhoneNumbers, n)
			}
		}
	case []any:
		for _, v := range numbers {
			n, ok := v.(string)
			if !ok || n == "" || seen[n] {
				continue
			}
			seen[n] = true
			r.PhoneNumbers = append(r.PhoneNumbers, n)
		}
	}
	return r
}

func stringValue(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

const (
	MethodVision          = "vision"
	MethodTextRecognition = "text-recognition"
)

// ExtractionResult wraps the record produced for one uploaded image together
// with the path that produced it and whether the vision service was usable
// for this run.
type ExtractionResult struct {
	Record    PaymentRecord `json:"extracted_data"`
	Method    string        `json:"extraction_method"`
	Available bool          `json:"vision_available"`
}

// SynthesisRequest is an edited record plus the style template used to render
// it back into an image. Unrecognized templates fall back to the default
// palette.
type SynthesisRequest struct {
	PaymentRecord
	Template string `json:"template_type"`
}
