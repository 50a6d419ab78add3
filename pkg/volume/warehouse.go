package volume

import (
	"strconv"

	"stdtick/pkg/csvio"
)

// Daily warehouse volume is in lots of 100 shares, canonical quantity is
// shares.
const warehouseLotSize = 100

// EODVolume is one warehouse end-of-day volume row.
type EODVolume struct {
	WindCode string
	Volume   float64
}

// EODVolumeReader reads per-symbol daily volume for one trade date. The
// warehouse lives behind this interface so reconciliation stays testable
// without a live database.
type EODVolumeReader interface {
	DailyVolume(date string) ([]EODVolume, error)
}

// FromWarehouse writes the warehouse's reported daily volumes rescaled to
// canonical units.
func FromWarehouse(reader EODVolumeReader, date, outputFile string) (err error) {
	rows, err := reader.DailyVolume(date)
	if err != nil {
		return
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		shares := int64(r.Volume * warehouseLotSize)
		out = append(out, []string{r.WindCode, strconv.FormatInt(shares, 10)})
	}

	logger.Infof("warehouse reported %d symbols for %s", len(out), date)

	err = csvio.WriteFile(outputFile, []string{"S_INFO_WINDCODE", "S_DQ_VOLUME"}, out)

	return
}
