package model

import "github.com/alihamza/reedit-backend/pkg/models"

type Storer interface {
	Store(models.ReceiptImage) error
}

type Retriever interface {
	Retrieve(uploadID string, kind string) (*models.ReceiptImage, error)
}

type RWStorage interface {
	Storer
	Retriever
}
