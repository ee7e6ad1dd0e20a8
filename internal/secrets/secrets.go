// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Supported key files: semantic-scholar-api-key, openalex-email, crossref-mailto.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

// Key file names understood by Apply.
const (
	SemanticScholarAPIKey = "semantic-scholar-api-key"
	OpenAlexEmail         = "openalex-email"
	CrossrefMailto        = "crossref-mailto"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Apply fills provider credentials in cfg from secrets. Values already set
// through config or environment take precedence.
func Apply(cfg *types.Config, secrets map[string]string) {
	set := func(provider, key string, field func(*types.ProviderConfig) *string) {
		v, ok := secrets[key]
		if !ok {
			return
		}
		pc, exists := cfg.Providers[provider]
		if !exists {
			return
		}
		if f := field(&pc); *f == "" {
			*f = v
		}
		cfg.Providers[provider] = pc
	}

	set(types.ProviderSemanticScholar, SemanticScholarAPIKey, func(pc *types.ProviderConfig) *string { return &pc.APIKey })
	set(types.ProviderOpenAlex, OpenAlexEmail, func(pc *types.ProviderConfig) *string { return &pc.Email })
	set(types.ProviderCrossref, CrossrefMailto, func(pc *types.ProviderConfig) *string { return &pc.Email })
}
