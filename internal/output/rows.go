package output

import "encoding/json"

const (
	TopicReports       = "analytics_reports"
	TopicRevenueSeries = "revenue_series"
	TopicMenuItems     = "menu_item_stats"
	TopicTopHotels     = "hotel_performance"
)

// ReportRow is the flattened form of a report envelope. Data holds the
// payload as a JSON string.
type ReportRow struct {
	Role        string `json:"role" parquet:"name=role, type=BYTE_ARRAY, convertedtype=UTF8"`
	Subject     string `json:"subject" parquet:"name=subject, type=BYTE_ARRAY, convertedtype=UTF8"`
	GeneratedAt string `json:"generatedAt" parquet:"name=generated_at, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp   int64  `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	Data        string `json:"-" parquet:"name=data, type=BYTE_ARRAY, convertedtype=UTF8"`
}

type RevenueRow struct {
	Role      string  `json:"role" parquet:"name=role, type=BYTE_ARRAY, convertedtype=UTF8"`
	Subject   string  `json:"subject" parquet:"name=subject, type=BYTE_ARRAY, convertedtype=UTF8"`
	Date      string  `json:"date" parquet:"name=date, type=BYTE_ARRAY, convertedtype=UTF8"`
	Revenue   float64 `json:"revenue" parquet:"name=revenue, type=DOUBLE"`
	Orders    int64   `json:"orders" parquet:"name=orders, type=INT64"`
	Timestamp int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
}

type MenuItemRow struct {
	TenantID   string  `json:"tenantId" parquet:"name=tenant_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	List       string  `json:"list" parquet:"name=list, type=BYTE_ARRAY, convertedtype=UTF8"` // hot, not, top_revenue
	Rank       int64   `json:"rank" parquet:"name=rank, type=INT64"`
	ID         string  `json:"id" parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Name       string  `json:"name" parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Category   string  `json:"category" parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	Price      float64 `json:"price" parquet:"name=price, type=DOUBLE"`
	OrderCount int64   `json:"orderCount" parquet:"name=order_count, type=INT64"`
	Revenue    float64 `json:"revenue" parquet:"name=revenue, type=DOUBLE"`
	Timestamp  int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
}

type HotelPerformanceRow struct {
	Rank      int64   `json:"rank" parquet:"name=rank, type=INT64"`
	ID        string  `json:"id" parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Name      string  `json:"name" parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Revenue   float64 `json:"revenue" parquet:"name=revenue, type=DOUBLE"`
	Orders    int64   `json:"orders" parquet:"name=orders, type=INT64"`
	Timestamp int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
}

// parquetTopic pairs a row model with a decoder turning a message into a row
// value of that model.
type parquetTopic struct {
	model  interface{}
	decode func(msg []byte) (interface{}, error)
}

var parquetTopics = map[string]parquetTopic{
	TopicReports:       {model: new(ReportRow), decode: decodeReport},
	TopicRevenueSeries: {model: new(RevenueRow), decode: decodeRow[RevenueRow]},
	TopicMenuItems:     {model: new(MenuItemRow), decode: decodeRow[MenuItemRow]},
	TopicTopHotels:     {model: new(HotelPerformanceRow), decode: decodeRow[HotelPerformanceRow]},
}

func decodeRow[T any](msg []byte) (interface{}, error) {
	var row T
	if err := json.Unmarshal(msg, &row); err != nil {
		return nil, err
	}
	return row, nil
}

func decodeReport(msg []byte) (interface{}, error) {
	var envelope struct {
		ReportRow
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return nil, err
	}
	row := envelope.ReportRow
	row.Data = string(envelope.Data)
	return row, nil
}
