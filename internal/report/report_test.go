package report

import (
	"encoding/json"
	"testing"
	"time"

	"fjacquet/nabtrade-xero/internal/converror"
	"fjacquet/nabtrade-xero/internal/converter"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var fixedTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleResult() *converter.Result {
	return &converter.Result{
		Directory:  "/statements",
		Convention: models.SignConventionSubtract,
		Processed:  1,
		Elapsed:    1500 * time.Millisecond,
		Files: []converter.FileResult{{
			Path:        "/statements/a.csv",
			Rows:        2,
			DebitTotal:  decimal.RequireFromString("4.5"),
			CreditTotal: decimal.RequireFromString("100"),
			TxTotal:     decimal.RequireFromString("95.5"),
		}},
		Failures: []converter.FileFailure{{
			Path: "/statements/b.csv",
			Kind: converror.KindRowShape,
			Err:  &converror.RowShapeError{FilePath: "/statements/b.csv", Row: 2, Got: 3, Want: 6},
		}},
	}
}

func newTestGenerator() (*ReportGenerator, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	g := NewReportGenerator(logger)
	g.now = func() time.Time { return fixedTime }
	return g, logger
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	g, _ := newTestGenerator()

	data, err := g.GenerateReport(sampleResult(), FormatJSON)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "/statements", got.Directory)
	assert.Equal(t, "subtract", got.SignConvention)
	assert.True(t, fixedTime.Equal(got.GeneratedAt))
	assert.Equal(t, 1, got.Processed)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, int64(1500), got.ElapsedMs)
	require.Len(t, got.Files, 1)
	assert.Equal(t, FileEntry{
		Path: "/statements/a.csv", Rows: 2, DebitTotal: "4.50", CreditTotal: "100.00", TxTotal: "95.50",
	}, got.Files[0])
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "row_shape", got.Failures[0].Kind)
	assert.Contains(t, got.Failures[0].Error, "has 3 fields, expected 6")
}

func TestReportGenerator_GenerateReport_YAML(t *testing.T) {
	g, _ := newTestGenerator()

	data, err := g.GenerateReport(sampleResult(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tx_total: \"95.50\"")

	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "/statements", got.Directory)
	assert.True(t, fixedTime.Equal(got.GeneratedAt))
	require.Len(t, got.Files, 1)
	assert.Equal(t, "95.50", got.Files[0].TxTotal)
}

func TestReportGenerator_GenerateReport_NoFailures(t *testing.T) {
	g, _ := newTestGenerator()
	result := &converter.Result{Directory: "/empty", Convention: models.SignConventionAdd}

	data, err := g.GenerateReport(result, FormatJSON)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "failures")
	assert.Contains(t, string(data), `"files": []`)
}

func TestReportGenerator_GenerateReport_UnsupportedFormat(t *testing.T) {
	g, _ := newTestGenerator()

	_, err := g.GenerateReport(sampleResult(), "xml")
	assert.EqualError(t, err, "unsupported report format: xml")
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out/report.json", FormatJSON, false},
		{"report.YAML", FormatYAML, false},
		{"report.yml", FormatYAML, false},
		{"report.txt", "", true},
		{"report", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReportGenerator_WriteReport(t *testing.T) {
	afs := afero.NewMemMapFs()
	require.NoError(t, afs.MkdirAll("/reports", 0755))
	g, logger := newTestGenerator()

	require.NoError(t, g.WriteReport(afs, "/reports/run.yaml", sampleResult()))

	data, err := afero.ReadFile(afs, "/reports/run.yaml")
	require.NoError(t, err)
	var got Report
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, 1, got.Processed)
	assert.True(t, logger.HasEntry("INFO", "Wrote conversion report"))
}

func TestReportGenerator_WriteReport_BadExtension(t *testing.T) {
	afs := afero.NewMemMapFs()
	g, _ := newTestGenerator()

	err := g.WriteReport(afs, "/reports/run.txt", sampleResult())
	require.Error(t, err)
	exists, _ := afero.Exists(afs, "/reports/run.txt")
	assert.False(t, exists)
}

func TestReportGenerator_WriteReport_MissingDirectory(t *testing.T) {
	afs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	g, _ := newTestGenerator()

	err := g.WriteReport(afs, "/reports/run.json", sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write report")
}
