package container

import (
	"context"
	"testing"

	"fjacquet/nabtrade-xero/internal/config"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "default config",
			config: config.DefaultConfig(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetParser())
			assert.NotNil(t, c.GetConverter())
			assert.NotNil(t, c.GetReportGenerator())
			assert.IsType(t, &afero.OsFs{}, c.GetFs())
			assert.Same(t, tt.config, c.GetConfig())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainerWithFs_NilFs(t *testing.T) {
	_, err := NewContainerWithFs(config.DefaultConfig(), nil, nil)
	assert.EqualError(t, err, "filesystem cannot be nil")
}

func TestNewContainerWithFs_PassesConfiguration(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CSV.Delimiter = ";"
	cfg.Convert.SignConvention = "add"
	cfg.Convert.StrictExtension = true
	cfg.Convert.ContinueOnError = true
	cfg.Convert.BackupSuffix = ".orig"

	c, err := NewContainerWithFs(cfg, afero.NewMemMapFs(), logging.NewMockLogger())
	require.NoError(t, err)

	opts := c.GetConverter().Options()
	assert.Equal(t, models.SignConventionAdd, opts.Convention)
	assert.True(t, opts.StrictExtension)
	assert.True(t, opts.ContinueOnError)
	assert.Equal(t, ".orig", opts.BackupSuffix)
	assert.Equal(t, ';', opts.Delimiter)
}

func TestContainer_ConvertsThroughWiredComponents(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(afs, "/in/a.csv",
		[]byte("Cash Account Transactions\n2024-01-15,DEBIT,Coffee,4.50,,1000.00\n"), 0644))
	logger := logging.NewMockLogger()

	c, err := NewContainerWithFs(config.DefaultConfig(), afs, logger)
	require.NoError(t, err)

	result, err := c.GetConverter().Convert(context.Background(), "/in")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	data, err := afero.ReadFile(afs, "/in/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "Date,Type,Description,Tx,Debit,Credit,Balance\n2024-01-15,DEBIT,Coffee,-4.50,4.50,,1000.00\n", string(data))

	require.NoError(t, afs.MkdirAll("/reports", 0755))
	require.NoError(t, c.GetReportGenerator().WriteReport(afs, "/reports/run.json", result))
	exists, err := afero.Exists(afs, "/reports/run.json")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, logger.HasEntry("DEBUG", "Container initialized successfully"))
}
