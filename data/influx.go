package data

import (
	"math"
	"time"

	"github.com/fatih/structs"
	client "github.com/influxdata/influxdb1-client/v2"

	"github.com/sigmalabs/vela/models"
	"github.com/sigmalabs/vela/settings"
)

// RecordBatch writes one run's risk metrics and allocation weights to
// InfluxDB, tagged by run ID so consecutive runs stay distinguishable.
func RecordBatch(cfg settings.InfluxConfig, result *models.BatchResult) error {
	influx, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     cfg.URL,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  time.Millisecond * 1000 * 10,
	})
	if err != nil {
		return err
	}
	defer influx.Close()

	bp, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database:  cfg.Database,
		Precision: "s",
	})
	if err != nil {
		return err
	}

	now := time.Now()
	for symbol, metrics := range result.Risk {
		fields := structs.Map(metrics)
		delete(fields, "Symbol")
		// Undefined metrics (zero-volatility sharpe) are not representable
		// in line protocol.
		for key, value := range fields {
			if f, ok := value.(float64); ok && math.IsNaN(f) {
				delete(fields, key)
			}
		}
		pt, err := client.NewPoint(
			"risk_metrics",
			map[string]string{"symbol": symbol, "run_id": result.RunID},
			fields,
			now,
		)
		if err != nil {
			return err
		}
		bp.AddPoint(pt)
	}

	profiles := map[string]models.Allocation{
		"aggressive":   result.Allocations.Aggressive,
		"moderate":     result.Allocations.Moderate,
		"conservative": result.Allocations.Conservative,
	}
	for profile, allocation := range profiles {
		for symbol, weight := range allocation {
			pt, err := client.NewPoint(
				"allocation",
				map[string]string{"profile": profile, "symbol": symbol, "run_id": result.RunID},
				map[string]interface{}{"weight": weight},
				now,
			)
			if err != nil {
				return err
			}
			bp.AddPoint(pt)
		}
	}

	return influx.Write(bp)
}
