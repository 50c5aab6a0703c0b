package paradigm

import (
	"fmt"

	"github.com/bastiangx/stemserve/pkg/cost"
)

// DefaultLambdaBits is the encoding length charged per letter of grammar.
const DefaultLambdaBits = 5

// Options carry the scoring parameters a Paradigm is built with.
type Options struct {
	Weights    cost.Weights
	LambdaBits int
}

// DefaultOptions returns the default weights and lambda.
func DefaultOptions() Options {
	return Options{
		Weights:    cost.DefaultWeights(),
		LambdaBits: DefaultLambdaBits,
	}
}

// Validate checks that no coefficient is negative.
func (o Options) Validate() error {
	if err := o.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if o.LambdaBits < 0 {
		return fmt.Errorf("%w: lambda bits must not be negative, got %d", ErrInvalidOptions, o.LambdaBits)
	}
	return nil
}
