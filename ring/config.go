package ring

import (
	"fmt"

	"github.com/unkn0wn-root/mhash"
)

const (
	defaultReplicas = 2
	defaultWeight   = 0.5
)

type NodeID string

// Config controls placement. Seed selects the hash family: two rings with
// different seeds place the same key independently.
type Config struct {
	Replicas int
	Seed     uint64
	Engine   mhash.Engine
}

// DefaultConfig places every key on two owners with the Mix engine.
func DefaultConfig() Config {
	return Config{
		Replicas: defaultReplicas,
		Engine:   mhash.Mix,
	}
}

func (c Config) Validate() error {
	if c.Replicas <= 0 {
		return fmt.Errorf("%w: replicas must be positive, got %d", ErrInvalidConfig, c.Replicas)
	}
	return nil
}
