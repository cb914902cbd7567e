package synth_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alihamza/reedit-backend/pkg/models"
	"github.com/alihamza/reedit-backend/pkg/synth"
)

func TestRenderEmptyRequest(t *testing.T) {
	// Every field empty: all the default placeholders must render.
	out, err := synth.Render(models.SynthesisRequest{})
	assert.Nil(t, err)
	assert.NotEmpty(t, out)

	img, err := png.Decode(bytes.NewReader(out))
	assert.Nil(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())

	// Default palette is the green pair.
	r, g, _, _ := img.At(5, 5).RGBA()
	assert.Less(t, r>>8, uint32(100))
	assert.Greater(t, g>>8, uint32(100))

	// The content panel is white.
	r, g, b, _ := img.At(55, 300).RGBA()
	assert.Equal(t, uint32(255), r>>8)
	assert.Equal(t, uint32(255), g>>8)
	assert.Equal(t, uint32(255), b>>8)
}

func TestRenderJazzcashPalette(t *testing.T) {
	out, err := synth.Render(models.SynthesisRequest{Template: "JazzCash"})
	assert.Nil(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	assert.Nil(t, err)

	// Case-insensitive template match selects the orange pair.
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Greater(t, g>>8, uint32(100))
	assert.Less(t, b>>8, uint32(50))
}

func TestRenderFullRecord(t *testing.T) {
	req := models.SynthesisRequest{
		PaymentRecord: models.PaymentRecord{
			TransactionID: "TX1001",
			Amount:        "Rs. 2,500.00",
			Date:          "January 15, 2026 at 14:30",
			Sender:        "Ahmed Khan",
			Receiver:      "Bilal Store",
			Fee:           "Rs. 25.00",
			PaymentMethod: "JazzCash",
			Status:        "Successful",
			PhoneNumbers:  []string{"+923007654321", "03001234567"},
		},
		Template: "easypaisa",
	}
	out, err := synth.Render(req)
	assert.Nil(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	assert.Nil(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestRenderSinglePhoneSharedBetweenRows(t *testing.T) {
	req := models.SynthesisRequest{
		PaymentRecord: models.PaymentRecord{
			PhoneNumbers: []string{"03001234567"},
		},
	}
	out, err := synth.Render(req)
	assert.Nil(t, err)
	assert.NotEmpty(t, out)
}
