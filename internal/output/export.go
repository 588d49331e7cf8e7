package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
)

type Message struct {
	Topic string
	Value []byte
}

type reportMessage struct {
	Role        analytics.Role    `json:"role"`
	Subject     string            `json:"subject"`
	GeneratedAt string            `json:"generatedAt"`
	Timestamp   int64             `json:"timestamp"`
	Data        analytics.Payload `json:"data"`
}

// Exporter fans a report out into messages for a Destination.
type Exporter struct {
	dest Destination
}

func NewExporter(dest Destination) *Exporter {
	return &Exporter{dest: dest}
}

func (e *Exporter) Export(caller analytics.Caller, payload analytics.Payload, generatedAt time.Time) error {
	msgs, err := Messages(caller, payload, generatedAt)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if err := e.dest.WriteMessage(m.Topic, m.Value); err != nil {
			return fmt.Errorf("failed to export to %s: %w", m.Topic, err)
		}
	}
	return nil
}

func (e *Exporter) Close() error {
	return e.dest.Close()
}

// Messages renders one report envelope plus, for owners and admins, one row
// per revenue bucket and ranked item or hotel.
func Messages(caller analytics.Caller, payload analytics.Payload, generatedAt time.Time) ([]Message, error) {
	if payload == nil {
		return nil, fmt.Errorf("nothing to export")
	}
	ts := generatedAt.Unix()
	subject := subjectOf(caller)

	var msgs []Message
	add := func(topic string, v interface{}) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s message: %w", topic, err)
		}
		msgs = append(msgs, Message{Topic: topic, Value: data})
		return nil
	}

	err := add(TopicReports, reportMessage{
		Role:        payload.Role(),
		Subject:     subject,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Timestamp:   ts,
		Data:        payload,
	})
	if err != nil {
		return nil, err
	}

	var rows []interface{}
	switch p := payload.(type) {
	case *analytics.OwnerAnalytics:
		rows = append(rows, revenueRows(p.Role(), subject, p.RevenueChart, ts)...)
		rows = append(rows, menuRows(p.TenantID, "hot", p.MenuAnalytics.HotItems, ts)...)
		rows = append(rows, menuRows(p.TenantID, "not", p.MenuAnalytics.NotItems, ts)...)
		rows = append(rows, menuRows(p.TenantID, "top_revenue", p.MenuAnalytics.TopRevenue, ts)...)
	case *analytics.PlatformAnalytics:
		rows = append(rows, revenueRows(p.Role(), subject, p.RevenueChart, ts)...)
		for i, h := range p.TopPerformingHotels {
			rows = append(rows, HotelPerformanceRow{
				Rank:      int64(i + 1),
				ID:        h.ID,
				Name:      h.Name,
				Revenue:   h.Revenue,
				Orders:    int64(h.Orders),
				Timestamp: ts,
			})
		}
	}

	for _, row := range rows {
		if err := add(topicOf(row), row); err != nil {
			return nil, err
		}
	}
	return msgs, nil
}

func subjectOf(caller analytics.Caller) string {
	switch c := caller.(type) {
	case analytics.Owner:
		return c.TenantID
	case analytics.Customer:
		return c.CustomerID
	default:
		return ""
	}
}

func topicOf(row interface{}) string {
	switch row.(type) {
	case RevenueRow:
		return TopicRevenueSeries
	case MenuItemRow:
		return TopicMenuItems
	case HotelPerformanceRow:
		return TopicTopHotels
	default:
		return TopicReports
	}
}

func revenueRows(role analytics.Role, subject string, chart []analytics.RevenueBucket, ts int64) []interface{} {
	rows := make([]interface{}, 0, len(chart))
	for _, b := range chart {
		rows = append(rows, RevenueRow{
			Role:      string(role),
			Subject:   subject,
			Date:      b.Date,
			Revenue:   b.Revenue,
			Orders:    int64(b.Orders),
			Timestamp: ts,
		})
	}
	return rows
}

func menuRows(tenantID, list string, items []analytics.ItemStats, ts int64) []interface{} {
	rows := make([]interface{}, 0, len(items))
	for i, item := range items {
		rows = append(rows, MenuItemRow{
			TenantID:   tenantID,
			List:       list,
			Rank:       int64(i + 1),
			ID:         item.ID,
			Name:       item.Name,
			Category:   item.Category,
			Price:      item.Price,
			OrderCount: int64(item.OrderCount),
			Revenue:    item.Revenue,
			Timestamp:  ts,
		})
	}
	return rows
}
