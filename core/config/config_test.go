package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefault(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Prompt)
	assert.NotEmpty(t, cfg.Path)
}

func TestConfiguration_Environ(t *testing.T) {
	cfg := &Configuration{
		Path: "/bin",
		Env: map[string]string{
			"SHELL": "/bin/picosh",
			"PATH":  "/overridden",
		},
	}

	assert.Equal(t, []string{"PATH=/bin", "SHELL=/bin/picosh"}, cfg.Environ(),
		"PATH comes from the path field, not env")
}

func TestConfiguration_Validate(t *testing.T) {
	cases := []struct {
		name    string
		config  Configuration
		wantErr bool
	}{
		{
			name:   "valid",
			config: Configuration{Prompt: "$ ", Path: "/bin"},
		},
		{
			name:    "missing prompt",
			config:  Configuration{Path: "/bin"},
			wantErr: true,
		},
		{
			name:    "missing path",
			config:  Configuration{Prompt: "$ "},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	contents := []byte("prompt: '> '\npath: /bin\n")
	require.NoError(t, afero.WriteFile(fs, "/etc/picosh/config.yaml", contents, 0644))

	t.Run("file path", func(t *testing.T) {
		cfg, err := Load(fs, "/etc/picosh/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, "> ", cfg.Prompt)
		assert.Equal(t, "/bin", cfg.Path)
	})

	t.Run("directory path", func(t *testing.T) {
		cfg, err := Load(fs, "/etc/picosh")
		require.NoError(t, err)
		assert.Equal(t, "> ", cfg.Prompt)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(fs, "/nope.yaml")
		assert.Error(t, err)
	})

	t.Run("unknown field", func(t *testing.T) {
		bad := []byte("prompt: '> '\npath: /bin\nbogus: 1\n")
		require.NoError(t, afero.WriteFile(fs, "/bad.yaml", bad, 0644))

		_, err := Load(fs, "/bad.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/empty.yaml", []byte("{}"), 0644))

		_, err := Load(fs, "/empty.yaml")
		assert.Error(t, err)
	})
}
