package file

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoHeader          = errors.New("file has no header row")
	ErrUnknownColumns    = errors.New("header row has none of the import columns")
	ErrFileTooLarge      = errors.New("file is too large")
)
