package renderer

import "errors"

var (
	ErrSceneNotDefined   = errors.New("renderer: no scene defined")
	ErrCameraNotDefined  = errors.New("renderer: no camera defined")
	ErrInvalidFrameDims  = errors.New("renderer: frame dimensions must be non-zero")
	ErrAlreadyClosed     = errors.New("renderer: already closed")
	ErrNoSamplesPerPixel = errors.New("renderer: anti-aliasing sample count must be non-zero")
)
