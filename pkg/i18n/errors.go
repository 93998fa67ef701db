package i18n

import "errors"

var (
	ErrNilAdapter        = errors.New("translation adapter is nil")
	ErrNoTranslations    = errors.New("no translations found")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrInvalidStructure  = errors.New("invalid translation structure")
	ErrFailedToReadDir   = errors.New("failed to read translation directory")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrLoadingCancelled  = errors.New("loading translations cancelled")
)
