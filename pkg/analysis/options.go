package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/chatlens/pkg/profile"

	"github.com/go-playground/validator"
)

const (
	DefaultK    = 5
	DefaultSeed = 42
)

// Options configures one analysis run.
type Options struct {
	K    int   `json:"k" validate:"min=2,max=20"`
	Seed int64 `json:"seed" validate:"min=0"`
	// ClusterNames replaces the default cluster names when non-nil.
	ClusterNames profile.Names `json:"cluster_names,omitempty"`
}

// DefaultOptions returns K=5, Seed=42 and the default cluster names.
func DefaultOptions() Options {
	return Options{K: DefaultK, Seed: DefaultSeed}
}

var validate = validator.New()

// Validate checks the option ranges. Failures wrap ErrInvalidConfig.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v violates %s=%s", strings.ToLower(fe.Field()), fe.Value(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, ", "))
}
