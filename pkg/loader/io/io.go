package io

import (
	"context"
	"fmt"
	"os"

	"github.com/OFFIS-RIT/chatlens/pkg/loader"
)

// IOTranscriptLoader loads transcripts from the local filesystem with caching.
type IOTranscriptLoader struct {
	cache *loader.Cache
	// MaxBytes rejects files larger than this when positive.
	MaxBytes int64
}

// NewIOTranscriptLoader creates a new filesystem-based loader.
func NewIOTranscriptLoader() *IOTranscriptLoader {
	return &IOTranscriptLoader{cache: loader.NewCache()}
}

// Load reads file.Path from disk. Results are cached per file.
func (l *IOTranscriptLoader) Load(ctx context.Context, file loader.TranscriptFile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.cache.Do(loader.CacheKey(file), func() ([]byte, error) {
		if l.MaxBytes > 0 {
			info, err := os.Stat(file.Path)
			if err != nil {
				return nil, err
			}
			if info.Size() > l.MaxBytes {
				return nil, fmt.Errorf("transcript %s is %d bytes, limit is %d", file.Path, info.Size(), l.MaxBytes)
			}
		}
		return os.ReadFile(file.Path)
	})
}

// Forget drops the cached bytes of file.
func (l *IOTranscriptLoader) Forget(file loader.TranscriptFile) {
	l.cache.Forget(loader.CacheKey(file))
}
