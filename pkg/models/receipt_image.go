package models

import (
	"fmt"
	"io"
	"time"
)

// Image kinds stored in the archive.
const (
	ImageKindUpload    = "upload"
	ImageKindGenerated = "generated"
)

type ReceiptImage struct {
	Reader   io.ReadSeeker
	UploadID string
	Kind     string
	Time     time.Time
}

func (r ReceiptImage) Id() string {
	return fmt.Sprintf("%s_%s", r.UploadID, r.Kind)
}
