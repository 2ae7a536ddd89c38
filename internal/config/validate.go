package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// validatorInstance returns the shared validator, which caches struct metadata.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field constraints and cross-field rules. Every problem is reported in the
// returned error.
func (c *Config) Validate() error {
	var errs []error

	if err := validatorInstance().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, fieldError(fe))
		}
	}

	v := c.Viewer
	if v.DefaultFieldOfView < v.MinFieldOfView || v.DefaultFieldOfView > v.MaxFieldOfView {
		errs = append(errs, fmt.Errorf("viewer.default_fov %.1f outside [%.1f, %.1f]",
			v.DefaultFieldOfView, v.MinFieldOfView, v.MaxFieldOfView))
	}
	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	if fe.Param() != "" {
		return fmt.Errorf("%s: failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Errorf("%s: failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
}
