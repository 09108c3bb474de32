package textfile

import (
	"fmt"
	"os"

	"github.com/npillmayer/rope"
	"github.com/npillmayer/rope/block"
)

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.
*/

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// Load maps a file into memory and creates a rope of it, with one leaf per
// fragment of fragSize bytes. A fragSize of 0 lets Load choose a fragment size
// depending on the size of the file.
//
// Opening the file is done synchronously. Errors from mapping the file wrap
// block.ErrMapping.
func Load(name string, fragSize int64) (*rope.Rope, error) {
	cfg := rope.DefaultConfig()
	cfg.MappedBlockSize = int(fragSize)
	return LoadWithConfig(name, cfg)
}

// LoadWithConfig maps a file into memory and creates a rope of it. Mapped
// blocks are sized after cfg.MappedBlockSize, text inserted later goes to
// appendable blocks of size cfg.AppendBlockSize.
func LoadWithConfig(name string, cfg rope.Config) (*rope.Rope, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", block.ErrMapping, err)
	}
	fragSize := int64(cfg.MappedBlockSize)
	if fragSize <= 0 {
		fragSize = fragmentSizeFor(fi.Size())
	}
	m, blocks, err := block.MapFile(name, int(fragSize))
	if err != nil {
		tracer().Errorf("cannot load %s: %v", name, err)
		return nil, err
	}
	r := rope.FromBlocks(blocks, cfg)
	m.Release() // from now on the rope's leaves keep the mapping alive
	tracer().Infof("loaded %s: %d bytes in %d fragments", name, r.Len(), len(blocks))
	return r, nil
}

// fragmentSizeFor selects a fragment size for a file of the given size.
func fragmentSizeFor(size int64) int64 {
	switch {
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}
