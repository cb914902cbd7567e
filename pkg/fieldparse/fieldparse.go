package fieldparse

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alihamza/reedit-backend/pkg/models"
)

// Ordered pattern lists per field. Order matters: the first pattern that
// matches wins, so reordering changes extraction outcomes on ambiguous text.
var (
	transactionIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TID[:\s]*([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)Transaction\s+ID[:\s]*([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)Ref[:\s]*([A-Za-z0-9]+)`),
		regexp.MustCompile(`(?i)Reference[:\s]*([A-Za-z0-9]+)`),
	}
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Rs\.?\s*([0-9,]+\.?\d*)`),
		regexp.MustCompile(`(?i)PKR\s*([0-9,]+\.?\d*)`),
		regexp.MustCompile(`₨\s*([0-9,]+\.?\d*)`),
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\w+\s+\d{1,2},\s+\d{4}\s+at\s+\d{1,2}:\d{2})`),
		regexp.MustCompile(`(?i)On\s+(\w+\s+\d{1,2},\s+\d{4}\s+at\s+\d{1,2}:\d{2})`),
		regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4}\s+\d{1,2}:\d{2})`),
	}
	feePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Fee[:\s]*Rs\.?\s*([0-9,]+\.?\d*)`),
		regexp.MustCompile(`(?i)Charges[:\s]*Rs\.?\s*([0-9,]+\.?\d*)`),
	}

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+92\d{10}`),
		regexp.MustCompile(`03\d{9}`),
		regexp.MustCompile(`\d{11}`),
	}

	digitRun = regexp.MustCompile(`\d{10,}`)
)

// paymentMethods is an ordered vocabulary: the first term found anywhere in
// the text wins.
var paymentMethods = []string{"jazzcash", "easypaisa", "ubl", "hbl", "bank", "wallet"}

var titleCaser = cases.Title(language.Und)

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// Parse populates a PaymentRecord from raw recognized text. It is permissive
// and best-effort: a field nothing matched stays empty, the input text is
// stored verbatim in all_text and the function never fails.
func Parse(text string) models.PaymentRecord {
	record := models.PaymentRecord{AllText: text}

	record.TransactionID = firstMatch(transactionIDPatterns, text)
	record.Date = firstMatch(datePatterns, text)
	if amount := firstMatch(amountPatterns, text); amount != "" {
		// Re-prefixed with Rs. no matter which currency marker matched.
		record.Amount = "Rs. " + amount
	}
	if fee := firstMatch(feePatterns, text); fee != "" {
		record.Fee = "Rs. " + fee
	}

	record.PhoneNumbers = phoneNumbers(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)

		// A line mentioning "from"/"to" puts the name on the next line.
		// Candidates that look like a phone number are rejected.
		if strings.Contains(lower, "from") && i+1 < len(lines) {
			candidate := strings.TrimSpace(lines[i+1])
			if !digitRun.MatchString(candidate) {
				record.Sender = candidate
			}
		}
		if strings.Contains(lower, "to") && !strings.Contains(lower, "total") && i+1 < len(lines) {
			candidate := strings.TrimSpace(lines[i+1])
			if !digitRun.MatchString(candidate) {
				record.Receiver = candidate
			}
		}

		if strings.Contains(lower, "successful") {
			record.Status = "Successful"
		} else if strings.Contains(lower, "failed") {
			record.Status = "Failed"
		} else if strings.Contains(lower, "pending") {
			record.Status = "Pending"
		}
	}

	lowerText := strings.ToLower(text)
	for _, method := range paymentMethods {
		if strings.Contains(lowerText, method) {
			record.PaymentMethod = titleCaser.String(method)
			break
		}
	}

	return record
}

// phoneNumbers unions the matches of all phone patterns. Deduplication is by
// exact string: the same number in national and international form yields two
// entries. Spans claimed by an earlier pattern are masked out so the bare
// 11-digit pattern does not extract a partial run from inside an
// international number.
func phoneNumbers(text string) []string {
	var numbers []string
	seen := map[string]bool{}
	for _, p := range phonePatterns {
		for _, m := range p.FindAllString(text, -1) {
			if seen[m] {
				continue
			}
			seen[m] = true
			numbers = append(numbers, m)
		}
		text = p.ReplaceAllStringFunc(text, func(m string) string {
			return strings.Repeat(" ", len(m))
		})
	}
	return numbers
}
