package fs

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/alihamza/reedit-backend/pkg/models"
	"github.com/alihamza/reedit-backend/pkg/storage/model"
)

var log = logrus.StandardLogger().WithField("package", "storage/fs")

// Fs archives receipt images on the local filesystem, one directory per
// upload, one file per kind (upload, generated).
type Fs struct {
	dir string
}

func (fs *Fs) Retrieve(uploadID string, kind string) (*models.ReceiptImage, error) {
	f, err := os.Open(path.Join(fs.dir, uploadID, fmt.Sprintf("%s.png", kind)))
	if err != nil {
		return nil, err
	}
	return &models.ReceiptImage{
		UploadID: uploadID,
		Kind:     kind,
		Reader:   f,
	}, nil
}

func (fs *Fs) Store(img models.ReceiptImage) error {
	dir := path.Join(fs.dir, img.UploadID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path.Join(dir, fmt.Sprintf("%s.png", img.Kind)))
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := io.Copy(f, img.Reader); err != nil {
		return err
	}
	if _, err := img.Reader.Seek(0, io.SeekStart); err != nil {
		return err
	}
	log.Debugf("archived %s as %s", img.Id(), f.Name())
	return nil
}

var _ model.Storer = (*Fs)(nil)
var _ model.Retriever = (*Fs)(nil)

func New(dir string) (*Fs, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create storage directory: %w", err)
		}
	}
	return &Fs{dir: dir}, nil
}
