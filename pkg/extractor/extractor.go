package extractor

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/alihamza/reedit-backend/pkg/fieldparse"
	"github.com/alihamza/reedit-backend/pkg/models"
	"github.com/alihamza/reedit-backend/pkg/ocr"
	"github.com/alihamza/reedit-backend/pkg/preprocess"
)

var log = logrus.StandardLogger().WithField("package", "extractor")

// VisionExtractor is the capability the orchestrator needs from the vision
// service. Extract never errors: failures come back as a mapping carrying an
// "error" key.
type VisionExtractor interface {
	Available() bool
	Extract(ctx context.Context, image []byte, mimeType string) map[string]any
}

type Config struct {
	// Vision may be nil when the service is not configured at all.
	Vision VisionExtractor
	// Engine overrides the text recognition engine, mainly for tests.
	Engine ocr.Engine
	// Profile selects the preprocessing applied before text recognition.
	Profile preprocess.Profile
}

// Extractor decides, per image, whether to trust the vision service or fall
// back to preprocessing + text recognition + heuristic field parsing.
type Extractor struct {
	vision     VisionExtractor
	recognizer *ocr.Recognizer
	profile    preprocess.Profile
}

func New(config Config) *Extractor {
	return &Extractor{
		vision:     config.Vision,
		recognizer: ocr.New(config.Engine),
		profile:    config.Profile,
	}
}

// Available reports whether the vision path is configured and operational.
func (e *Extractor) Available() bool {
	return e.vision != nil && e.vision.Available()
}

// Extract turns raw image bytes into a structured record. It never fails:
// every adapter failure degrades to the fallback path, and the fallback path
// always produces a record, even a sparse one.
func (e *Extractor) Extract(ctx context.Context, image []byte, mimeType string) models.ExtractionResult {
	available := e.Available()

	if available {
		log.Debugf("trying vision extraction")
		if record, ok := e.acceptVision(ctx, image, mimeType); ok {
			log.Debugf("vision extraction accepted")
			return models.ExtractionResult{
				Record:    record,
				Method:    models.MethodVision,
				Available: true,
			}
		}
		log.Warnf("vision extraction rejected, falling back to text recognition")
	}

	processed := preprocess.Process(image, e.profile)
	text := e.recognizer.BestText(processed)
	return models.ExtractionResult{
		Record:    fieldparse.Parse(text),
		Method:    models.MethodTextRecognition,
		Available: available,
	}
}

// acceptVision runs the vision adapter and decides whether its output is
// authoritative: it must carry no error key and a non-empty all_text.
func (e *Extractor) acceptVision(ctx context.Context, image []byte, mimeType string) (models.PaymentRecord, bool) {
	m := e.vision.Extract(ctx, image, mimeType)
	if _, hasError := m["error"]; hasError {
		return models.PaymentRecord{}, false
	}
	allText, _ := m["all_text"].(string)
	if allText == "" {
		return models.PaymentRecord{}, false
	}
	return models.RecordFromMap(m), true
}
