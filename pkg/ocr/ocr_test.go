package ocr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alihamza/reedit-backend/pkg/ocr"
)

type fakeEngine struct {
	results map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeEngine) Recognize(image []byte, profile ocr.Profile) (string, error) {
	f.calls = append(f.calls, profile.Name)
	if err, ok := f.errs[profile.Name]; ok {
		return "", err
	}
	return f.results[profile.Name], nil
}

var _ ocr.Engine = (*fakeEngine)(nil)

func TestBestTextPicksLongest(t *testing.T) {
	e := &fakeEngine{results: map[string]string{
		"single-block":  "Rs. 500",
		"single-column": "Rs. 500\nSent to Ahmed Khan",
		"auto":          "noise",
	}}
	r := ocr.New(e)
	assert.Equal(t, "Rs. 500\nSent to Ahmed Khan", r.BestText(nil))
	assert.Equal(t, []string{"single-block", "single-column", "auto"}, e.calls)
}

func TestBestTextIgnoresWhitespace(t *testing.T) {
	e := &fakeEngine{results: map[string]string{
		"single-block":  "   \n\t\n   ",
		"single-column": "ok",
	}}
	r := ocr.New(e)
	assert.Equal(t, "ok", r.BestText(nil))
}

func TestBestTextSkipsFailingProfiles(t *testing.T) {
	e := &fakeEngine{
		results: map[string]string{"auto": "recovered text"},
		errs: map[string]error{
			"single-block":  fmt.Errorf("tesseract exploded"),
			"single-column": fmt.Errorf("tesseract exploded again"),
		},
	}
	r := ocr.New(e)
	assert.Equal(t, "recovered text", r.BestText(nil))
}

func TestBestTextAllFail(t *testing.T) {
	e := &fakeEngine{errs: map[string]error{
		"single-block":  fmt.Errorf("boom"),
		"single-column": fmt.Errorf("boom"),
		"auto":          fmt.Errorf("boom"),
	}}
	r := ocr.New(e)
	assert.Equal(t, "", r.BestText(nil))
}
