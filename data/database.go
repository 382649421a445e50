package data

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/sigmalabs/vela/logger"
	"github.com/sigmalabs/vela/models"
)

// GetBars fetches one symbol's bar history from a Postgres candle store and
// validates it into a series. Timestamps are stored as epoch milliseconds.
func GetBars(dsn, symbol, interval string, start, end time.Time) (*models.BarSeries, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	bars := []models.Bar{}
	query := `select timestamp, open, high, low, close, volume from candles
		where symbol = $1 and interval = $2 and timestamp >= $3 and timestamp <= $4
		order by timestamp asc`
	err = db.Select(&bars, query, symbol, interval, start.Unix()*1000, end.Unix()*1000)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: no %s candles between %s and %s", symbol, interval,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return models.NewBarSeries(symbol, bars)
}

// GetBatch fetches every requested symbol from the candle store, skipping
// symbols with no usable data.
func GetBatch(dsn, interval string, symbols []string, start, end time.Time) (map[string]*models.BarSeries, error) {
	batch := make(map[string]*models.BarSeries, len(symbols))
	for _, symbol := range symbols {
		series, err := GetBars(dsn, symbol, interval, start, end)
		if err != nil {
			logger.Errorf("db load: skipping %s: %v", symbol, err)
			continue
		}
		batch[symbol] = series
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("no loadable candles for %d symbols", len(symbols))
	}
	return batch, nil
}
