package synth

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alihamza/reedit-backend/pkg/models"
)

var log = logrus.StandardLogger().WithField("package", "synth")

const (
	width  = 400
	height = 600
)

var (
	grayColor      = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	lightGrayColor = color.RGBA{R: 211, G: 211, B: 211, A: 255}

	jazzcashTop    = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	jazzcashBottom = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	defaultTop     = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	defaultBottom  = color.RGBA{R: 0, G: 100, B: 0, A: 255}
)

var titleCaser = cases.Title(language.Und)

// loadFace builds a font face from an embedded TTF, substituting the built-in
// bitmap font if face construction fails.
func loadFace(ttf []byte, size float64) font.Face {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		log.Warnf("unable to parse font: %v", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Warnf("unable to create font face: %v", err)
		return basicfont.Face7x13
	}
	return face
}

var (
	titleFace = loadFace(gobold.TTF, 24)
	textFace  = loadFace(goregular.TTF, 16)
	largeFace = loadFace(gobold.TTF, 32)
)

func palette(template string) (color.Color, color.Color) {
	if strings.EqualFold(template, "jazzcash") {
		return jazzcashTop, jazzcashBottom
	}
	return defaultTop, defaultBottom
}

func orDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Render draws the edited record onto a fixed 400x600 canvas and returns it
// as PNG bytes. Rendering failure returns an error and no partial image.
func Render(req models.SynthesisRequest) (out []byte, err error) {
	// The drawing library panics on some degenerate inputs; surface that as
	// a render failure instead of taking down the request.
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("unable to render receipt: %v", r)
		}
	}()

	dc := gg.NewContext(width, height)

	top, bottom := palette(req.Template)
	gradient := gg.NewLinearGradient(0, 0, 0, height)
	gradient.AddColorStop(0, top)
	gradient.AddColorStop(1, bottom)
	dc.SetFillStyle(gradient)
	dc.DrawRectangle(0, 0, width, height)
	dc.Fill()

	// Content panel.
	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(50, 80, width-100, height-160, 15)
	dc.Fill()

	dc.SetFontFace(titleFace)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(orDefault(req.Status, "Transaction Successful"), width/2, 50, 0.5, 0.5)

	dc.SetFontFace(textFace)
	if req.TransactionID != "" {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored("TID: "+req.TransactionID, width/2, 120, 0.5, 0.5)
	}

	date := orDefault(req.Date, time.Now().Format("January 2, 2006 at 15:04"))
	dc.SetColor(grayColor)
	dc.DrawStringAnchored(date, width/2, 145, 0.5, 0.5)

	dc.SetFontFace(largeFace)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(orDefault(req.Amount, "Rs. 0.00"), width/2, 220, 0.5, 0.5)

	dc.SetFontFace(textFace)
	dc.SetColor(grayColor)
	dc.DrawStringAnchored(orDefault(req.PaymentMethod, "QR Payment"), width/2, 260, 0.5, 0.5)

	dc.SetColor(color.Black)
	dc.DrawStringAnchored("Fee", 70, 320, 0, 0.5)
	dc.DrawStringAnchored(orDefault(req.Fee, "Rs. 0.00"), width-70, 320, 1, 0.5)

	separator(dc, 345)

	receiverPhone := ""
	if len(req.PhoneNumbers) > 0 {
		receiverPhone = req.PhoneNumbers[0]
	}
	dc.SetColor(color.Black)
	dc.DrawStringAnchored("To", 70, 370, 0, 0.5)
	dc.DrawStringAnchored(orDefault(req.Receiver, "Receiver Name"), width-70, 370, 1, 0.5)
	if receiverPhone != "" {
		dc.SetColor(grayColor)
		dc.DrawStringAnchored(receiverPhone, width-70, 395, 1, 0.5)
	}

	separator(dc, 425)

	// The sender keeps the second number when two were extracted, otherwise
	// shares the first.
	senderPhone := receiverPhone
	if len(req.PhoneNumbers) > 1 {
		senderPhone = req.PhoneNumbers[1]
	}
	dc.SetColor(color.Black)
	dc.DrawStringAnchored("From", 70, 450, 0, 0.5)
	dc.DrawStringAnchored(orDefault(req.Sender, "Sender Name"), width-70, 450, 1, 0.5)
	if senderPhone != "" {
		dc.SetColor(grayColor)
		dc.DrawStringAnchored(senderPhone, width-70, 475, 1, 0.5)
	}

	brand := "Payment App"
	if req.Template != "" {
		brand = titleCaser.String(req.Template)
	}
	dc.SetColor(color.White)
	dc.DrawStringAnchored("Securely paid via "+brand, width/2, height-30, 0.5, 0.5)

	buf := bytes.NewBuffer(nil)
	if err := dc.EncodePNG(buf); err != nil {
		return nil, fmt.Errorf("unable to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func separator(dc *gg.Context, y float64) {
	dc.SetColor(lightGrayColor)
	dc.SetLineWidth(1)
	dc.DrawLine(70, y, width-70, y)
	dc.Stroke()
}
