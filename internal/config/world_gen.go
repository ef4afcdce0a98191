package config

import (
	"errors"
	"fmt"
)

// WorldConfig is the [world] section of the configuration file
type WorldConfig struct {
	// Size in chunks
	SizeX int   `toml:"size_x"`
	SizeY int   `toml:"size_y"`
	SizeZ int   `toml:"size_z"`
	Seed  int64 `toml:"seed"`
	// Number of GPU buffers shared by all chunks, 0 = one per chunk
	PoolSize int `toml:"pool_size"`
	// Visibility test for chunks: "center" or "frustum"
	Culler string `toml:"culler"`
}

// Culler names accepted in [world] culler.
const (
	CullerCenter  = "center"
	CullerFrustum = "frustum"
)

func defaultWorld() WorldConfig {
	return WorldConfig{SizeX: 32, SizeY: 2, SizeZ: 32, Culler: CullerCenter}
}

// Chunks returns the total number of chunks in the world.
func (w WorldConfig) Chunks() int {
	return w.SizeX * w.SizeY * w.SizeZ
}

func (w WorldConfig) validate() error {
	var errs []error
	if w.SizeX < 1 || w.SizeY < 1 || w.SizeZ < 1 {
		errs = append(errs, fmt.Errorf("%w: world size %dx%dx%d must be positive", ErrInvalid, w.SizeX, w.SizeY, w.SizeZ))
	}
	if w.PoolSize < 0 {
		errs = append(errs, fmt.Errorf("%w: pool_size %d is negative", ErrInvalid, w.PoolSize))
	}
	if w.Culler != CullerCenter && w.Culler != CullerFrustum {
		errs = append(errs, fmt.Errorf("%w: unknown culler %q", ErrInvalid, w.Culler))
	}
	return errors.Join(errs...)
}
