package fs_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alihamza/reedit-backend/pkg/models"
	"github.com/alihamza/reedit-backend/pkg/storage/fs"
)

func TestStoreAndRetrieve(t *testing.T) {
	s, err := fs.New(t.TempDir())
	if err != nil {
		t.Fatalf("unable to create fs storage: %v", err)
	}

	payload := []byte("png bytes")
	err = s.Store(models.ReceiptImage{
		Reader:   bytes.NewReader(payload),
		UploadID: "abc-123",
		Kind:     models.ImageKindGenerated,
		Time:     time.Now(),
	})
	assert.Nil(t, err)

	img, err := s.Retrieve("abc-123", models.ImageKindGenerated)
	assert.Nil(t, err)
	got, err := io.ReadAll(img.Reader)
	assert.Nil(t, err)
	assert.Equal(t, payload, got)
}

func TestRetrieveMissing(t *testing.T) {
	s, err := fs.New(t.TempDir())
	if err != nil {
		t.Fatalf("unable to create fs storage: %v", err)
	}

	_, err = s.Retrieve("nope", models.ImageKindUpload)
	assert.NotNil(t, err)
}
