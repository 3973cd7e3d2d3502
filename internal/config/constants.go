package config

import "time"

// app constants
const (
	AppName        = "lunatint"
	AppDescription = "Nine-step tint ramps for named colors, written into Lunacy palettes"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	Version = "0.3.0"
)

// config source constants
const (
	FileName  = "lunatint.yaml"
	EnvFile   = ".env"
	EnvPrefix = "LUNATINT"
)

// ramp curve constants
const (
	Lightest = 0.95
	Darkest  = 0.10
	Headroom = 0.5
	Gamma    = 1.0
)

// palette constants
const (
	DefaultStep = 500

	DuplicatesLast   = "last"
	DuplicatesStrict = "strict"

	MaxWorkers = 4
)

// watch constants
const (
	WatchDebounce = 300 * time.Millisecond
)

// document constants
const (
	NamePlaceholder = "{name}"
	StepPlaceholder = "{step}"

	NameFormat = "Palette / " + NamePlaceholder + " / " + NamePlaceholder + "." + StepPlaceholder
)
