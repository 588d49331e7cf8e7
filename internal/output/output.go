package output

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/models"
)

// Destination receives exported messages. Each message is a JSON object
// carrying a unix "timestamp" field that file outputs partition on.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// New builds the destination named by cfg.Format. An empty path always
// means console.
func New(ctx context.Context, cfg models.OutputConfig) (Destination, error) {
	switch cfg.Format {
	case "", "console":
		return NewConsoleOutput(nil), nil
	case "kafka":
		return NewKafkaOutput(cfg)
	}

	if cfg.Path == "" && cfg.Destination != "cloud" {
		return NewConsoleOutput(nil), nil
	}
	switch cfg.Format {
	case "json":
		return NewJSONOutput(cfg.Path, cfg.Folder), nil
	case "csv":
		return NewCSVOutput(cfg.Path, cfg.Folder), nil
	case "parquet":
		return NewParquetOutput(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
}

// partition returns the year/month/day/hour path for a message, taken from
// its timestamp in UTC.
func partition(msg []byte) (string, map[string]interface{}, error) {
	var event map[string]interface{}
	if err := json.Unmarshal(msg, &event); err != nil {
		return "", nil, err
	}

	timestamp, ok := event["timestamp"].(float64)
	if !ok {
		return "", nil, fmt.Errorf("invalid timestamp")
	}

	eventTime := time.Unix(int64(timestamp), 0).UTC()
	year, month, day := eventTime.Date()
	hour := eventTime.Hour()

	return fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, hour), event, nil
}
