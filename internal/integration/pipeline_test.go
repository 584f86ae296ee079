package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/nabtrade-xero/internal/common"
	"fjacquet/nabtrade-xero/internal/config"
	"fjacquet/nabtrade-xero/internal/container"
	"fjacquet/nabtrade-xero/internal/logging"
	"fjacquet/nabtrade-xero/internal/models"
	"fjacquet/nabtrade-xero/internal/report"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCrossFileConsistency converts a directory of exports on disk and checks
// every output has the Xero layout and a Tx value recomputable from its row.
func TestCrossFileConsistency(t *testing.T) {
	tempDir := t.TempDir()
	logger := logging.NewMockLogger()

	rowCounts := map[string]int{
		"jan.csv": 3,
		"feb.csv": 12,
		"mar.csv": 0,
	}
	for name, rows := range rowCounts {
		createTestExport(t, tempDir, name, rows)
	}

	cfg := config.DefaultConfig()
	cfg.Report.Path = filepath.Join(tempDir, "report.json")
	c, err := container.NewContainerWithFs(cfg, afero.NewOsFs(), logger)
	require.NoError(t, err)

	result, err := c.GetConverter().Convert(context.Background(), tempDir)
	require.NoError(t, err)
	assert.Equal(t, len(rowCounts), result.Processed)

	for name, rows := range rowCounts {
		path := filepath.Join(tempDir, name)
		records := readRecords(t, path)

		require.Len(t, records, rows+1, "%s: header plus one row per input row", name)
		assert.Equal(t, models.OutputHeader, records[0].Fields, name)

		for _, rec := range records[1:] {
			require.Len(t, rec.Fields, len(models.OutputHeader))
			debit, err := models.ParseAmount(rec.Fields[4])
			require.NoError(t, err)
			credit, err := models.ParseAmount(rec.Fields[5])
			require.NoError(t, err)
			assert.Equal(t, models.FormatAmount(credit.Sub(debit)), rec.Fields[3], "%s line %d", name, rec.Line)
		}

		_, err := os.Stat(path + ".bak")
		assert.True(t, os.IsNotExist(err), "%s: backup removed", name)
	}

	require.NoError(t, c.GetReportGenerator().WriteReport(c.GetFs(), cfg.Report.Path, result))
	data, err := os.ReadFile(cfg.Report.Path)
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, len(rowCounts), rep.Processed)

	total := 0
	for _, f := range rep.Files {
		total += f.Rows
	}
	assert.Equal(t, 15, total)
}

// TestRerunIsRejected converts a directory twice. The second run must stop at
// the first file and leave every converted file as it was.
func TestRerunIsRejected(t *testing.T) {
	tempDir := t.TempDir()
	createTestExport(t, tempDir, "a.csv", 2)
	createTestExport(t, tempDir, "b.csv", 2)

	c, err := container.NewContainerWithFs(config.DefaultConfig(), afero.NewOsFs(), logging.NewMockLogger())
	require.NoError(t, err)

	_, err = c.GetConverter().Convert(context.Background(), tempDir)
	require.NoError(t, err)
	before := snapshot(t, tempDir)

	_, err = c.GetConverter().Convert(context.Background(), tempDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in Xero import format")
	assert.Equal(t, before, snapshot(t, tempDir))
}

// TestBOMPrefixedExport checks that a byte order mark written by spreadsheet
// tools does not end up in the converted file.
func TestBOMPrefixedExport(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "bom.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("\xEF\xBB\xBFCash Account Transactions\n2024-01-15,DEBIT,Coffee,4.50,,1000.00\n"), 0644))

	c, err := container.NewContainerWithFs(config.DefaultConfig(), afero.NewOsFs(), logging.NewMockLogger())
	require.NoError(t, err)

	_, err = c.GetConverter().Convert(context.Background(), tempDir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Date,Type,"))
}

func createTestExport(t *testing.T, dir, filename string, rows int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("Cash Account Transactions\n")
	balance := decimal.NewFromInt(1000)
	for i := 0; i < rows; i++ {
		amount := decimal.NewFromInt(int64(i*37 + 5)).Div(decimal.NewFromInt(8))
		if i%2 == 0 {
			balance = balance.Sub(amount)
			fmt.Fprintf(&b, "2024-01-%02d,DEBIT,\"Purchase %d, card\",%s,,%s\n", i%28+1, i, amount.String(), balance.StringFixed(2))
		} else {
			balance = balance.Add(amount)
			fmt.Fprintf(&b, "2024-01-%02d,CREDIT,Deposit %d,,%s,%s\n", i%28+1, i, amount.String(), balance.StringFixed(2))
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(b.String()), 0644))
}

func readRecords(t *testing.T, path string) []common.Record {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err, "Failed to open CSV file: %s", path)
	defer func() {
		if cerr := file.Close(); cerr != nil {
			t.Logf("Failed to close file: %v", cerr)
		}
	}()

	records, err := common.ReadRecords(file, common.DefaultDelimiter)
	require.NoError(t, err)
	return records
}

func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(data)
	}
	return files
}
