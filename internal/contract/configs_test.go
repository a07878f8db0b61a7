package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geoqa/geoqa/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempDataset creates a throwaway dataset file so path resolution succeeds.
func writeTempDataset(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	return path
}

// baseInput returns a raw input with every knob at its default.
func baseInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:        DefaultResultLimit,
		Workers:      DefaultWorkers,
		Precision:    DefaultPrecision,
		TopValues:    DefaultTopValues,
		MinScore:     DefaultMinScore,
		Output:       string(schema.TextOut),
		StoreBackend: string(schema.NoneBackend),
		Emoji:        "yes",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(_ *ConfigRawInput) {},
			expectError: false,
		},
		{
			name: "zero limit",
			mutate: func(in *ConfigRawInput) {
				in.Limit = 0
			},
			expectError: true,
		},
		{
			name: "limit over maximum",
			mutate: func(in *ConfigRawInput) {
				in.Limit = MaxResultLimit + 1
			},
			expectError: true,
		},
		{
			name: "zero workers",
			mutate: func(in *ConfigRawInput) {
				in.Workers = 0
			},
			expectError: true,
		},
		{
			name: "zero top values",
			mutate: func(in *ConfigRawInput) {
				in.TopValues = 0
			},
			expectError: true,
		},
		{
			name: "min score over 100",
			mutate: func(in *ConfigRawInput) {
				in.MinScore = 100.5
			},
			expectError: true,
		},
		{
			name: "negative min score",
			mutate: func(in *ConfigRawInput) {
				in.MinScore = -1.0
			},
			expectError: true,
		},
		{
			name: "invalid precision",
			mutate: func(in *ConfigRawInput) {
				in.Precision = 3
			},
			expectError: true,
		},
		{
			name: "invalid output mode",
			mutate: func(in *ConfigRawInput) {
				in.Output = "xml"
			},
			expectError: true,
		},
		{
			name: "output mode is case insensitive",
			mutate: func(in *ConfigRawInput) {
				in.Output = "JSON"
			},
			expectError: false,
		},
		{
			name: "invalid store backend",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = "redis"
			},
			expectError: true,
		},
		{
			name: "mysql backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.MySQLBackend)
			},
			expectError: true,
		},
		{
			name: "mysql backend with valid connection string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.MySQLBackend)
				in.StoreDBConnect = "user:pass@tcp(localhost:3306)/geoqa"
			},
			expectError: false,
		},
		{
			name: "postgresql backend missing dbname",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = string(schema.PostgreSQLBackend)
				in.StoreDBConnect = "host=localhost user=geoqa"
			},
			expectError: true,
		},
		{
			name: "invalid emoji flag",
			mutate: func(in *ConfigRawInput) {
				in.Emoji = "maybe"
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateTransfersValues(t *testing.T) {
	input := baseInput()
	input.OutputFile = "out.json"
	input.Column = "name"
	input.Width = 120
	input.Emoji = "no"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "out.json", cfg.OutputFile)
	assert.Equal(t, "name", cfg.Column)
	assert.Equal(t, 120, cfg.Width)
	assert.False(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
	assert.InDelta(t, DefaultMinScore, cfg.MinScore, 1e-9)
}

func TestProcessAndValidateDatasetPaths(t *testing.T) {
	t.Run("resolves existing dataset", func(t *testing.T) {
		path := writeTempDataset(t, "parcels.geojson")

		input := baseInput()
		input.DatasetPathStr = path

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))

		assert.True(t, filepath.IsAbs(cfg.DatasetPath))
		assert.Equal(t, "parcels", cfg.DatasetName)
	})

	t.Run("missing dataset fails", func(t *testing.T) {
		input := baseInput()
		input.DatasetPathStr = filepath.Join(t.TempDir(), "missing.geojson")

		cfg := &Config{}
		err := ProcessAndValidate(cfg, input)
		assert.ErrorContains(t, err, "dataset not found")
	})

	t.Run("directory path fails", func(t *testing.T) {
		input := baseInput()
		input.DatasetPathStr = t.TempDir()

		cfg := &Config{}
		err := ProcessAndValidate(cfg, input)
		assert.ErrorContains(t, err, "directory")
	})

	t.Run("resolves base path for comparisons", func(t *testing.T) {
		input := baseInput()
		input.DatasetPathStr = writeTempDataset(t, "after.geojson")
		input.BasePathStr = writeTempDataset(t, "before.geojson")

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))

		assert.Equal(t, "after", cfg.DatasetName)
		assert.True(t, filepath.IsAbs(cfg.BasePath))
	})

	t.Run("empty paths are left alone", func(t *testing.T) {
		input := baseInput()

		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, input))

		assert.Empty(t, cfg.DatasetPath)
		assert.Empty(t, cfg.BasePath)
	})
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		DatasetPath: "/data/parcels.geojson",
		DatasetName: "parcels",
		ResultLimit: 10,
		MinScore:    75.0,
		Output:      schema.JSONOut,
	}

	clone := cfg.Clone()
	clone.DatasetName = "rivers"
	clone.ResultLimit = 99

	assert.Equal(t, "parcels", cfg.DatasetName)
	assert.Equal(t, 10, cfg.ResultLimit)
	assert.Equal(t, "rivers", clone.DatasetName)
	assert.Equal(t, schema.JSONOut, clone.Output)
}

func TestCloneForDataset(t *testing.T) {
	path := writeTempDataset(t, "rivers.geojson")

	cfg := &Config{
		DatasetPath: "/data/parcels.geojson",
		DatasetName: "parcels",
		Workers:     4,
	}

	clone, err := cfg.CloneForDataset(path)
	require.NoError(t, err)

	assert.Equal(t, "rivers", clone.DatasetName)
	assert.Equal(t, 4, clone.Workers)
	assert.Equal(t, "parcels", cfg.DatasetName, "original config is untouched")

	_, err = cfg.CloneForDataset(filepath.Join(t.TempDir(), "missing.gpkg"))
	assert.Error(t, err)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{
			name:        "sqlite never requires connection string",
			backend:     schema.SQLiteBackend,
			connStr:     "",
			expectError: false,
		},
		{
			name:        "none never requires connection string",
			backend:     schema.NoneBackend,
			connStr:     "",
			expectError: false,
		},
		{
			name:        "mysql requires tcp host",
			backend:     schema.MySQLBackend,
			connStr:     "user:pass@localhost/geoqa",
			expectError: true,
		},
		{
			name:        "mysql accepts canonical dsn",
			backend:     schema.MySQLBackend,
			connStr:     "user:pass@tcp(localhost:3306)/geoqa",
			expectError: false,
		},
		{
			name:        "postgresql requires host parameter",
			backend:     schema.PostgreSQLBackend,
			connStr:     "dbname=geoqa",
			expectError: true,
		},
		{
			name:        "postgresql accepts keyword dsn",
			backend:     schema.PostgreSQLBackend,
			connStr:     "host=localhost dbname=geoqa user=geoqa",
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
