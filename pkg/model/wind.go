package model

import (
	"gorm.io/gorm"

	"stdtick/pkg/volume"
)

// AShareEODPrices is the warehouse's end-of-day price table, read-only here.
type AShareEODPrices struct {
	SInfoWindcode string  `gorm:"column:S_INFO_WINDCODE"`
	TradeDt       string  `gorm:"column:TRADE_DT"`
	SDqVolume     float64 `gorm:"column:S_DQ_VOLUME"`
}

func (AShareEODPrices) TableName() string {
	return "AShareEODPrices"
}

// WindReader reads daily volumes from the wind warehouse.
type WindReader struct {
	db *gorm.DB
}

func NewWindReader(db *gorm.DB) *WindReader {
	return &WindReader{db: db}
}

// DailyVolume returns every symbol's reported volume for one trade date.
func (r *WindReader) DailyVolume(date string) (rows []volume.EODVolume, err error) {
	var records []AShareEODPrices
	err = r.db.
		Select("S_INFO_WINDCODE", "S_DQ_VOLUME").
		Where("TRADE_DT = ?", date).
		Find(&records).Error
	if err != nil {
		return
	}

	rows = make([]volume.EODVolume, 0, len(records))
	for _, rec := range records {
		rows = append(rows, volume.EODVolume{
			WindCode: rec.SInfoWindcode,
			Volume:   rec.SDqVolume,
		})
	}

	return
}
