package collector

import (
	"context"
	"errors"

	"github.com/prabalesh/hwinfo/internal/models"
)

// GPUReader enumerates GPUs. Readers return ErrNoGPU when their driver or
// device tree is absent.
type GPUReader interface {
	GPUs(ctx context.Context) ([]models.GPU, error)
}

// GPUReaders tries each reader in order and returns the first non-empty
// result.
type GPUReaders []GPUReader

func (r GPUReaders) GPUs(ctx context.Context) ([]models.GPU, error) {
	var firstErr error
	for _, reader := range r {
		gpus, err := reader.GPUs(ctx)
		if err == nil && len(gpus) > 0 {
			return gpus, nil
		}
		if err != nil && !errors.Is(err, ErrNoGPU) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNoGPU
}

func (s *StatsCollector) collectGPU(ctx context.Context, snap *models.Snapshot) error {
	if s.gpu == nil {
		return nil
	}

	gpus, err := s.gpu.GPUs(ctx)
	if errors.Is(err, ErrNoGPU) {
		s.log.Debug("no gpu detected")
		return nil
	}
	if err != nil {
		return err
	}

	snap.GPUs = gpus
	return nil
}
