package marketdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/replay/internal/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSVSeries(t *testing.T) {
	path := writeFile(t, t.TempDir(), "btc.csv",
		"date,close\n2024-01-01,42000.5\n2024-01-02,43100\n")

	series, err := LoadCSVSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.True(t, series[0].Close.Equal(decimal.RequireFromString("42000.5")))
	assert.True(t, series[1].Close.Equal(decimal.NewFromInt(43100)))
}

func TestLoadCSVSeries_NoHeader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "btc.csv",
		"2024-01-01,100\n2024-01-02,101\n")

	series, err := LoadCSVSeries(path)
	require.NoError(t, err)
	require.Len(t, series, 2)
}

func TestLoadCSVSeries_BadClose(t *testing.T) {
	path := writeFile(t, t.TempDir(), "btc.csv",
		"2024-01-01,not-a-number\n")

	_, err := LoadCSVSeries(path)
	require.Error(t, err)
}

func TestLoadCSVSeries_BadDate(t *testing.T) {
	path := writeFile(t, t.TempDir(), "btc.csv",
		"2024-01-01,100\nyesterday,101\n")

	_, err := LoadCSVSeries(path)
	require.Error(t, err)
}

func TestLoadCSVDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AAPL.csv", "2024-01-01,180\n")
	writeFile(t, dir, "BTC.csv", "2024-01-01,42000\n")

	aapl := domain.Asset{Name: "AAPL", AllowsFractional: false}
	series, err := LoadCSVDir(dir, []domain.Asset{aapl})
	require.NoError(t, err)
	require.Len(t, series, 2)

	// described asset keeps its fractional flag
	require.Contains(t, series, aapl)
	// undescribed assets default to fractional
	require.Contains(t, series, domain.Asset{Name: "BTC", AllowsFractional: true})
}
