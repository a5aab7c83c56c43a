package models

import "errors"

var (
	ErrNoImageFile = errors.New("object has no image file")
	ErrImageLoad   = errors.New("failed to load image")
	ErrImageScale  = errors.New("failed to scale image")
)
