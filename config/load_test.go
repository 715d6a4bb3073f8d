/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/flex/apis"
	"dirpx.dev/flex/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "flex.yaml", `
duplicate_policy: ignore
strict_types: false
auto_implement: true
max_unwrap: 3
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, apis.DuplicateIgnore, cfg.DuplicatePolicy)
	assert.False(t, cfg.StrictTypes)
	assert.True(t, cfg.AutoImplement)
	assert.Equal(t, config.DefaultSelfDescribed, cfg.SelfDescribed, "missing key keeps default")
	assert.Equal(t, 3, cfg.MaxUnwrap)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "flex.json", `{"strict_types": true}`)
	t.Setenv("FLEX_STRICT_TYPES", "false")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.StrictTypes)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "bad.yaml", "duplicate_policy: overwrite\n")
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set(config.KeySelfDescribed, false)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.False(t, cfg.SelfDescribed)
	assert.Equal(t, config.DefaultStrictTypes, cfg.StrictTypes)
}
