package cli

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config is the command configuration read from the environment.
// Command-line flags override the matching fields after loading.
type Config struct {
	APIKey   string        `envconfig:"CRAWLKIT_API_KEY" validate:"required,startswith=ck_"`
	BaseURL  string        `envconfig:"CRAWLKIT_BASE_URL" default:"https://api.example.sh" validate:"required,url"`
	Timeout  time.Duration `envconfig:"CRAWLKIT_TIMEOUT" default:"30s" validate:"gt=0"`
	LogLevel string        `envconfig:"CRAWLKIT_LOG_LEVEL" default:"warn" validate:"oneof=debug info warn error"`
	LogDev   bool          `envconfig:"CRAWLKIT_LOG_DEV" default:"false"`
}

// LoadConfig reads the configuration from the environment. It does not
// validate; call Validate once flag overrides have been applied.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("envconfig"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks the configuration and reports every invalid variable.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Field(), validationMessage(fe)))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "startswith":
		return fmt.Sprintf("must start with %q", fe.Param())
	case "url":
		return "must be an absolute URL"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return "is invalid"
}
