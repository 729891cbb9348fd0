package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "APP_"

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	dir string
}

// WithConfigDir reads the YAML files from dir instead of ./configs.
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.dir = dir }
}

// Load builds the configuration for profile. Later layers win:
//
//	defaults
//	configs/base.yaml
//	configs/{profile}.yaml
//	Firebase emulator variables (FIREBASE_AUTH_EMULATOR_HOST,
//	  FIRESTORE_EMULATOR_HOST, GOOGLE_CLOUD_PROJECT)
//	APP_ variables, e.g. APP_SESSION_COOKIE_NAME -> session.cookie_name
//
// APP_ names are matched against the keys already loaded, so underscores
// inside a key survive. Unknown names fall back to one dot per underscore.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}
	o := loadOptions{dir: "configs"}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("default %s: %w", key, err)
		}
	}
	for _, name := range []string{"base", profile} {
		path := filepath.Join(o.dir, name+".yaml")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}
	for key, val := range emulatorOverrides(os.Getenv) {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("emulator %s: %w", key, err)
		}
	}

	known := make(map[string]string, len(k.Keys()))
	for _, key := range k.Keys() {
		known[strings.ReplaceAll(key, ".", "_")] = key
	}
	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
			if key, ok := known[name]; ok {
				return key, value
			}
			return strings.ReplaceAll(name, "_", "."), value
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading %s variables: %w", envPrefix, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", profile, err)
	}
	return &cfg, nil
}

// emulatorOverrides points the firebase backend at a local Firebase
// Emulator Suite when its standard variables are set.
func emulatorOverrides(getenv func(string) string) map[string]string {
	out := map[string]string{}
	if host := getenv("FIREBASE_AUTH_EMULATOR_HOST"); host != "" {
		out["backend.auth_url"] = "http://" + host + "/identitytoolkit.googleapis.com/v1"
		out["backend.token_url"] = "http://" + host + "/securetoken.googleapis.com/v1"
	}
	if host := getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
		out["backend.firestore_url"] = "http://" + host + "/v1"
	}
	if project := getenv("GOOGLE_CLOUD_PROJECT"); project != "" {
		out["backend.project_id"] = project
	}
	return out
}

// checkProfile rejects names that could escape the config directory.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a bare name", profile)
	}
	return nil
}
