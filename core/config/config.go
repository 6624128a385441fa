package config

import (
	_ "embed"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name Load expects inside a
// configuration directory.
const ConfigurationName = "config.yaml"

type Configuration struct {
	// Prompt is printed before each interactive read.
	Prompt string `json:"prompt" validate:"required"`

	// HistoryFile stores interactive history, relative to $HOME.
	// Empty disables history persistence.
	HistoryFile string `json:"history_file"`

	// Path seeds $PATH for command resolution.
	Path string `json:"path" validate:"required"`

	// Env holds extra variables set at session start.
	Env map[string]string `json:"env"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Environ renders the configured variables as sorted "key=value"
// entries, PATH included.
func (c *Configuration) Environ() []string {
	out := []string{"PATH=" + c.Path}
	for k, v := range c.Env {
		if k == "PATH" {
			continue
		}
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

// Default returns the embedded stock configuration. It panics on
// failure because the embedded file is validated by tests.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	if err := out.Validate(); err != nil {
		panic(err)
	}
	return &out
}
