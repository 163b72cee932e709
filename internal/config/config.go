// Package config resolves API keys and settings. Secrets come from an
// optional YAML file or the environment; lookups use dotted paths
// ("openai.api_key") that fall back to the matching env var
// ("OPENAI_API_KEY").
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds resolved settings for one process.
type Config struct {
	OpenAIKey string
	GoogleKey string
	SerpKey   string
	StorePath string
	TraitPath string

	secrets map[string]any
}

// Load reads `.env` (if present), the secrets YAML at secretsPath (if
// present), and the environment. A missing secrets file is not an
// error; missing keys surface later as ErrNotConfigured from the
// provider clients.
func Load(secretsPath string) (*Config, error) {
	_ = godotenv.Load()

	secrets, err := loadSecrets(secretsPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{secrets: secrets}
	cfg.OpenAIKey = cfg.Secret("openai.api_key")
	cfg.GoogleKey = cfg.Secret("google.api_key")
	cfg.SerpKey = cfg.Secret("serpapi.api_key")

	cfg.StorePath = strings.TrimSpace(os.Getenv("OMNI_STORE_PATH"))
	if cfg.StorePath == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		cfg.StorePath = filepath.Join(home, ".omni", "omni.db")
	}
	cfg.TraitPath = strings.TrimSpace(os.Getenv("OMNI_TRAIT_CONFIG"))
	return cfg, nil
}

func loadSecrets(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read secrets file %s: %w", path, err)
	}
	var out map[string]any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("could not parse secrets file %s: %w", path, err)
	}
	return out, nil
}

// Secret resolves a dotted path against the secrets file, then falls
// back to the env var named by upper-casing the path with dots and
// dashes as underscores. Returns "" when neither is set.
func (c *Config) Secret(path string) string {
	if v := lookup(c.secrets, strings.Split(path, ".")); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(EnvName(path)))
}

// EnvName maps a dotted secret path to its env-var form:
// "openai.api_key" becomes "OPENAI_API_KEY".
func EnvName(path string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return strings.ToUpper(r.Replace(path))
}

func lookup(m map[string]any, parts []string) string {
	if len(m) == 0 || len(parts) == 0 {
		return ""
	}
	v, ok := m[parts[0]]
	if !ok {
		return ""
	}
	if len(parts) == 1 {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return ""
	}
	child, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	return lookup(child, parts[1:])
}
