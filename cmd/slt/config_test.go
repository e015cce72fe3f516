package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigEmptyPathReturnsZeroValue(t *testing.T) {
	cfg, err := loadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, fileConfig{}, cfg)
}

func TestLoadConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slt.yaml")
	contents := "engine: postgres\nhost: db.internal\nport: 5432\nuser: tester\npassword: secret\ndb: widgets\n"
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := loadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, fileConfig{
		Engine: "postgres", Host: "db.internal", Port: 5432,
		User: "tester", Password: "secret", DbName: "widgets",
	}, cfg)
}

func TestLoadConfigMissingFileIsError(t *testing.T) {
	_, err := loadConfig("/nonexistent/slt.yaml")
	assert.Error(t, err)
}

func TestApplyConfigFillsUnsetFieldsOnly(t *testing.T) {
	opts := &options{User: "explicit-user"}
	cfg := fileConfig{Engine: "mysql", User: "config-user", Password: "config-pass", Port: 3306}

	applyConfig(opts, cfg)

	assert.Equal(t, "explicit-user", opts.User, "explicit flag should win over config")
	assert.Equal(t, "mysql", opts.Engine)
	assert.Equal(t, "config-pass", opts.Password)
	assert.Equal(t, 3306, opts.Port)
}
