package convert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stdtick/pkg/convert"
	"stdtick/pkg/csvio"
)

func writeCSV(t *testing.T, path string, header []string, rows [][]string) {
	t.Helper()
	require.Nil(t, csvio.WriteFile(path, header, rows))
}

func writeRawBatch(t *testing.T, inputDir string) {
	t.Helper()

	writeCSV(t, filepath.Join(inputDir, "sse-tick.csv"),
		[]string{"tick_index", "symbol_id", "sell_order_no", "buy_order_no", "tick_type", "order_price", "qty", "tick_time", "data_year", "data_month", "data_day"},
		[][]string{
			{"1", "600000", "0", "5001", "A", "10000", "2000", "93000010", "2024", "1", "5"},
			{"2", "600000", "5000", "0", "D", "10000", "2000", "93000020", "2024", "1", "5"},
			{"3", "600000", "5000", "5001", "T", "10000", "1500", "93000030", "2024", "1", "5"},
			{"4", "600000", "0", "5002", "Z", "10000", "2000", "93000040", "2024", "1", "5"}, // unmapped, dropped
			{"5", "510050", "5100", "5101", "T", "10000", "3000", "93000050", "2024", "1", "5"},
		})

	writeCSV(t, filepath.Join(inputDir, "szse-order-tick.csv"),
		[]string{"sequence", "symbol", "side", "sequence_num", "order_type", "px", "qty", "quote_update_time"},
		[][]string{
			{"10", "1", "1", "8001", "2", "123400", "300", "20240105093001000"},
			{"11", "1", "2", "8002", "2", "123500", "500", "20240105093002000"},
			{"12", "1", "1", "8003", "9", "123500", "500", "20240105093002500"}, // unmapped, dropped
		})

	writeCSV(t, filepath.Join(inputDir, "szse-trade-tick.csv"),
		[]string{"sequence", "symbol", "ask_app_seq_num", "bid_app_seq_num", "exe_type", "exe_px", "exe_qty", "quote_update_time"},
		[][]string{
			{"13", "1", "8002", "8001", "F", "123450", "200", "20240105093003000"},
			{"14", "1", "8002", "8001", "4", "0", "100", "20240105093004000"},
			{"15", "1", "0", "0", "F", "123450", "100", "20240105093005000"},
		})
}

func TestConvertRaw(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeRawBatch(t, inputDir)

	sum, err := convert.ConvertRaw(inputDir, outputDir)
	require.Nil(t, err)

	assert.Equal(t, []string{inputDir}, sum.Converted)
	assert.Empty(t, sum.NoData)
	assert.Empty(t, sum.BadData)

	// SSE stream keeps feed order, quantity rescales by 1000, time joins
	// date components with the 8-digit time of day.
	tbl, err := csvio.ReadFile(filepath.Join(outputDir, "600000-std-tick.csv"), false)
	require.Nil(t, err)
	assert.Equal(t, [][]string{
		{"1", "600000", "0", "5001", "L", "10", "2", "2024010593000010"},
		{"2", "600000", "5000", "0", "C", "10", "2", "2024010593000020"},
		{"3", "600000", "5000", "5001", "T", "10", "1", "2024010593000030"},
	}, tbl.Rows())

	// Excluded-class symbols still get their own std tick file.
	tbl, err = csvio.ReadFile(filepath.Join(outputDir, "510050-std-tick.csv"), false)
	require.Nil(t, err)
	require.Len(t, tbl.Rows(), 1)
	assert.Equal(t, "3", tbl.Rows()[0][6])

	// SZSE order and trade streams merge by feed index.
	tbl, err = csvio.ReadFile(filepath.Join(outputDir, "000001-std-tick.csv"), false)
	require.Nil(t, err)
	assert.Equal(t, [][]string{
		{"10", "000001", "0", "8001", "L", "12.34", "3", "20240105093001000"},
		{"11", "000001", "8002", "0", "L", "12.35", "5", "20240105093002000"},
		{"13", "000001", "8002", "8001", "T", "12.345", "2", "20240105093003000"},
		{"14", "000001", "8002", "8001", "C", "0", "1", "20240105093004000"},
		{"15", "000001", "0", "0", "T", "12.345", "1", "20240105093005000"},
	}, tbl.Rows())
}

func TestConvertRawTradedQuantity(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeRawBatch(t, inputDir)

	_, err := convert.ConvertRaw(inputDir, outputDir)
	require.Nil(t, err)

	// Trade rows only, excluded classes removed, symbol sorted.
	tbl, err := csvio.ReadFile(filepath.Join(outputDir, "quantity_from_std_ticks.csv"), false)
	require.Nil(t, err)
	assert.Equal(t, [][]string{
		{"000001", "3"},
		{"600000", "1"},
	}, tbl.Rows())
}

func TestConvertRawMissingFile(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	// Batch folder exists but the SSE tick file is absent.
	sum, err := convert.ConvertRaw(inputDir, outputDir)
	require.Nil(t, err)

	assert.Equal(t, []string{inputDir}, sum.NoData)
}

func TestConvertRawMissingFolder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	outputDir := t.TempDir()

	sum, err := convert.ConvertRaw(missing, outputDir)
	require.Nil(t, err)

	assert.Equal(t, []string{missing}, sum.NoData)
}

func TestConvertRawBadData(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	writeRawBatch(t, inputDir)

	// Corrupt a numeric field.
	writeCSV(t, filepath.Join(inputDir, "szse-trade-tick.csv"),
		[]string{"sequence", "symbol", "ask_app_seq_num", "bid_app_seq_num", "exe_type", "exe_px", "exe_qty", "quote_update_time"},
		[][]string{
			{"13", "1", "8002", "8001", "F", "not-a-price", "200", "20240105093003000"},
			{"14", "1", "8002", "8001", "4", "0", "100", "20240105093004000"},
			{"15", "1", "0", "0", "F", "123450", "100", "20240105093005000"},
		})

	sum, err := convert.ConvertRaw(inputDir, outputDir)
	require.Nil(t, err)

	assert.Equal(t, []string{inputDir}, sum.BadData)

	_, serr := os.Stat(filepath.Join(outputDir, "quantity_from_std_ticks.csv"))
	assert.True(t, os.IsNotExist(serr))
}
