package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")

	ErrInvalidConcurrencyWorkers = errors.New("concurrency workers must be greater than 0")
	ErrInvalidRampLightness      = errors.New("ramp lightest must be greater than darkest, both within [0, 1]")
	ErrInvalidRampHeadroom       = errors.New("ramp headroom must be within (0, 1)")
	ErrInvalidRampGamma          = errors.New("ramp gamma must be greater than 0")
	ErrInvalidDuplicatePolicy    = errors.New("invalid duplicate policy")
	ErrInvalidNameFormat         = errors.New("name format must contain {name} and {step}")
	ErrInvalidWatchDebounce      = errors.New("watch debounce must be greater than 0")

	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidStep      = errors.New("invalid step")
	ErrEmptyName        = errors.New("color name is empty")
	ErrDuplicateName    = errors.New("duplicate color name in batch")
	ErrInvalidColorSpec = errors.New("invalid color spec")
	ErrInvalidPattern   = errors.New("invalid name pattern")

	ErrFailedToReadInput  = errors.New("failed to read input file")
	ErrFailedToParseInput = errors.New("failed to parse input file")

	ErrFailedToReadDocument  = errors.New("failed to read document")
	ErrFailedToParseDocument = errors.New("failed to parse document")
	ErrDocumentEntryMissing  = errors.New("document archive has no document entry")
	ErrFailedToWriteDocument = errors.New("failed to write document")

	ErrNoRequests        = errors.New("no colors to apply")
	ErrInvalidTransition = errors.New("invalid pipeline transition")
	ErrUnknownTarget     = errors.New("unknown target")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrConfigExists      = errors.New("config file already exists")
	ErrNothingToWatch    = errors.New("watch mode needs at least one input file")
	ErrFailedToWatch     = errors.New("failed to watch input files")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
