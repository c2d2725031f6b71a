package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Setting keys. Environment variables of the same name override the file.
const (
	KeyUseOllama  = "NEO_USE_OLLAMA"
	KeyOllamaHost = "NEO_OLLAMA_HOST"
	KeyAPIKey     = "NEO_API_KEY"
	KeyModel      = "NEO_MODEL"
	KeyContext    = "NEO_CONTEXT"
	KeyLogLevel   = "NEO_LOG"
)

// ConfigFileName is the settings file kept in the user's home directory.
// The installer reads and writes the same file, so the key=value line format
// must not change.
const ConfigFileName = ".neo"

// ConfigStore resolves named settings across three tiers: process environment,
// the on-disk key=value file, and (optionally) an interactive prompt. It is
// passed explicitly to everything that needs settings so tests can point it at
// a temp file and a scripted Prompter.
type ConfigStore struct {
	// Path of the key=value file.
	Path string
	// Getenv is the environment lookup, os.Getenv unless overridden in tests.
	Getenv func(string) string
	// Prompter supplies interactive input. Nil disables the prompt tier.
	Prompter Prompter
}

// ResolveOpts controls the prompt and default tiers of Resolve.
type ResolveOpts struct {
	// Prompt is the question to ask when the key is not in the environment or
	// the file. Empty means never prompt.
	Prompt string
	// Secret masks the prompted input (API keys).
	Secret bool
	// Default is returned when every other tier comes up empty.
	Default string
}

// NewConfigStore returns a store backed by ~/.neo and the process environment.
func NewConfigStore() *ConfigStore {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &ConfigStore{
		Path:     filepath.Join(home, ConfigFileName),
		Getenv:   os.Getenv,
		Prompter: NewTerminalPrompter(),
	}
}

// Resolve returns the effective value of key. Precedence, highest first:
// a non-empty environment variable, the value in the file, a non-empty
// interactive answer (persisted before it is returned), the default.
// Cancelling ctx aborts a pending prompt with the context's error.
func (s *ConfigStore) Resolve(ctx context.Context, key string, opts ResolveOpts) (string, error) {
	if v := strings.TrimSpace(s.Getenv(key)); v != "" {
		return v, nil
	}

	values, _, err := s.load()
	if err != nil {
		return "", err
	}
	if v, ok := values[key]; ok && v != "" {
		return v, nil
	}

	if opts.Prompt != "" && s.Prompter != nil {
		answer, err := s.prompt(ctx, opts)
		if err != nil {
			return "", err
		}
		if answer != "" {
			if err := s.Persist(key, answer); err != nil {
				return "", err
			}
			return answer, nil
		}
	}

	return opts.Default, nil
}

func (s *ConfigStore) prompt(ctx context.Context, opts ResolveOpts) (string, error) {
	var answer string
	var err error
	if opts.Secret {
		answer, err = s.Prompter.Secret(ctx, opts.Prompt)
	} else {
		answer, err = s.Prompter.Input(ctx, opts.Prompt)
	}
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Persist sets key to value and rewrites the whole file. The rewrite goes
// through a temp file and rename so an interrupted write never truncates the
// existing config. Insertion order of existing keys is preserved.
func (s *ConfigStore) Persist(key, value string) error {
	values, order, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		order = append(order, key)
	}
	values[key] = value

	var b strings.Builder
	for _, k := range order {
		fmt.Fprintf(&b, "%s=%s\n", k, values[k])
	}

	// Carry the existing file's permissions across the rename; the installer
	// reads and writes the same file.
	mode := os.FileMode(0o600)
	if info, err := os.Stat(s.Path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ConfigFileName+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// load reads the file into a map plus the key order as read. A missing file is
// an empty config, not an error.
func (s *ConfigStore) load() (map[string]string, []string, error) {
	values := make(map[string]string)
	var order []string

	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, order, nil
		}
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Split on the first '=' only; values may themselves contain '='.
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" {
			continue
		}
		if _, seen := values[k]; !seen {
			order = append(order, k)
		}
		values[k] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	return values, order, nil
}
