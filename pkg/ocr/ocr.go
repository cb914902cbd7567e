package ocr

import (
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger().WithField("package", "ocr")

// Profile is one recognition configuration: a page segmentation assumption
// and an optional restricted character set.
type Profile struct {
	Name        string
	PageSegMode gosseract.PageSegMode
	Whitelist   string
}

const alnumWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz:.,/-+ "

// DefaultProfiles are attempted in order. The strictest profile assumes a
// single uniform block of text and restricts the output character set, the
// others progressively relax the segmentation assumptions.
var DefaultProfiles = []Profile{
	{Name: "single-block", PageSegMode: gosseract.PSM_SINGLE_BLOCK, Whitelist: alnumWhitelist},
	{Name: "single-column", PageSegMode: gosseract.PSM_SINGLE_COLUMN},
	{Name: "auto", PageSegMode: gosseract.PSM_AUTO},
}

// Engine runs text recognition on an encoded image under a single profile.
type Engine interface {
	Recognize(image []byte, profile Profile) (string, error)
}

// TesseractEngine recognizes text via the local Tesseract installation.
type TesseractEngine struct {
	Languages []string
}

func (e *TesseractEngine) Recognize(image []byte, profile Profile) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(e.Languages) > 0 {
		if err := client.SetLanguage(e.Languages...); err != nil {
			return "", err
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", err
	}
	if err := client.SetPageSegMode(profile.PageSegMode); err != nil {
		return "", err
	}
	if profile.Whitelist != "" {
		if err := client.SetWhitelist(profile.Whitelist); err != nil {
			return "", err
		}
	}
	return client.Text()
}

var _ Engine = (*TesseractEngine)(nil)

type Recognizer struct {
	engine   Engine
	profiles []Profile
}

func New(engine Engine) *Recognizer {
	if engine == nil {
		engine = &TesseractEngine{}
	}
	return &Recognizer{
		engine:   engine,
		profiles: DefaultProfiles,
	}
}

// BestText runs every profile and returns the result with the greatest
// stripped length. A profile that errors is skipped. An empty string is a
// valid outcome meaning no text was found.
func (r *Recognizer) BestText(image []byte) string {
	best := ""
	for _, p := range r.profiles {
		text, err := r.engine.Recognize(image, p)
		if err != nil {
			log.Debugf("profile %s failed: %v", p.Name, err)
			continue
		}
		if len(strings.TrimSpace(text)) > len(strings.TrimSpace(best)) {
			best = text
		}
	}
	log.Debugf("recognized %d characters", len(best))
	return best
}
