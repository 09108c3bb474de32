package rope

import (
	"fmt"

	"github.com/npillmayer/rope/block"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
)

// Configuration keys understood by ConfigFrom.
const (
	KeyMappedBlockSize = "rope.mappedblocksize"
	KeyAppendBlockSize = "rope.appendblocksize"
	KeyMaxRevisions    = "rope.maxrevisions"
)

// Config configures block sizes for ropes and the length of revision histories.
type Config struct {
	// MappedBlockSize is the size of the chunks a file is cut into when mapped.
	// 0 lets the loader choose a size depending on the size of the file.
	MappedBlockSize int
	// AppendBlockSize is the capacity of appendable blocks holding edited text.
	// Inserted text larger than this gets a block of its own.
	AppendBlockSize int
	// MaxRevisions limits the number of revisions a buffer keeps. 0 means
	// unlimited.
	MaxRevisions int
}

// DefaultConfig returns the configuration used if clients do not provide one.
func DefaultConfig() Config {
	return Config{
		AppendBlockSize: block.DefaultAppendSize,
	}
}

// ConfigFrom reads a configuration from a schuko configuration, filling in
// defaults for keys which are not set.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	cfg := DefaultConfig()
	if conf == nil {
		return cfg, nil
	}
	if conf.IsSet(KeyMappedBlockSize) {
		cfg.MappedBlockSize = conf.GetInt(KeyMappedBlockSize)
	}
	if conf.IsSet(KeyAppendBlockSize) {
		cfg.AppendBlockSize = conf.GetInt(KeyAppendBlockSize)
	}
	if conf.IsSet(KeyMaxRevisions) {
		cfg.MaxRevisions = conf.GetInt(KeyMaxRevisions)
	}
	if err := cfg.validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg.normalized(), nil
}

// GlobalConfig reads the configuration from the global schuko configuration
// (package gconf). Invalid values are traced and replaced by defaults.
func GlobalConfig() Config {
	cfg := DefaultConfig()
	if gconf.IsSet(KeyMappedBlockSize) {
		cfg.MappedBlockSize = gconf.GetInt(KeyMappedBlockSize)
	}
	if gconf.IsSet(KeyAppendBlockSize) {
		cfg.AppendBlockSize = gconf.GetInt(KeyAppendBlockSize)
	}
	if gconf.IsSet(KeyMaxRevisions) {
		cfg.MaxRevisions = gconf.GetInt(KeyMaxRevisions)
	}
	if err := cfg.validate(); err != nil {
		tracer().Errorf("global rope configuration: %v", err)
		return DefaultConfig()
	}
	return cfg.normalized()
}

func (cfg Config) normalized() Config {
	if cfg.AppendBlockSize == 0 {
		cfg.AppendBlockSize = block.DefaultAppendSize
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.MappedBlockSize < 0 {
		return fmt.Errorf("%w: mapped block size %d", ErrInvalidConfig, cfg.MappedBlockSize)
	}
	if cfg.AppendBlockSize < 0 {
		return fmt.Errorf("%w: append block size %d", ErrInvalidConfig, cfg.AppendBlockSize)
	}
	if cfg.MaxRevisions < 0 {
		return fmt.Errorf("%w: max revisions %d", ErrInvalidConfig, cfg.MaxRevisions)
	}
	return nil
}
