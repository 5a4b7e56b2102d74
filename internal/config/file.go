package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from a Go duration string
// ("750ms", "5s") or from a plain number of seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err == nil {
		parsed, err := time.ParseDuration(str)
		if err == nil {
			*d = Duration(parsed)

			return nil
		}
	}

	var seconds float64
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(seconds * float64(time.Second))

		return nil
	}

	return fmt.Errorf("line %d: %q is not a duration", value.Line, value.Value)
}

// File is the on-disk form of client settings.
//
//	interrupt_timeout: 2s
//	default_session_id: main
//	log_level: debug
type File struct {
	InterruptTimeout Duration `yaml:"interrupt_timeout"`
	DefaultSessionID string   `yaml:"default_session_id"`
	LogLevel         string   `yaml:"log_level"`
}

// LoadFile reads settings from a YAML file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	file, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return file, nil
}

// ParseFile decodes YAML settings. An empty document yields zero settings.
func ParseFile(data []byte) (*File, error) {
	file := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if file.InterruptTimeout < 0 {
		return nil, errors.New("interrupt_timeout must not be negative")
	}

	if _, err := file.Level(); err != nil {
		return nil, err
	}

	return file, nil
}

// Level parses LogLevel. Empty means info.
func (f *File) Level() (slog.Level, error) {
	var level slog.Level
	if f.LogLevel == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}

// Apply copies the settings present in f onto o. Fields left out of the file
// keep their current value in o.
func (f *File) Apply(o *Options) {
	if f.InterruptTimeout > 0 {
		o.InterruptTimeout = time.Duration(f.InterruptTimeout)
	}

	if f.DefaultSessionID != "" {
		o.DefaultSessionID = f.DefaultSessionID
	}

	if f.LogLevel != "" {
		level, _ := f.Level()
		o.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
}
