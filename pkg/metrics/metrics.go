// Package metrics содержит Prometheus-коллекторы сервиса.
// Все методы записи безопасны для nil-получателя: если метрики выключены,
// в компоненты передается nil *Metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	ReservationNights  *prometheus.CounterVec
	CapacityRejections *prometheus.CounterVec
	BlockChanges       *prometheus.CounterVec
	SpotsPerUnit       *prometheus.HistogramVec
	AvailableSpots     *prometheus.GaugeVec
}

// New создает и регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		ReservationNights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_reservation_nights_created_total",
			Help: "Reservation-night rows created, by assignment mode",
		}, []string{"service", "mode"}),
		CapacityRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_insufficient_capacity_total",
			Help: "Bookings rejected because of insufficient capacity, by assignment mode",
		}, []string{"service", "mode"}),
		BlockChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_block_changes_total",
			Help: "Capacity blocks created or released",
		}, []string{"service", "action"}),
		SpotsPerUnit: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parking_spots_per_unit",
			Help:    "Distinct physical spots used per booked unit (spot churn)",
			Buckets: []float64{1, 2, 3, 4, 5, 7, 10},
		}, []string{"service"}),
		AvailableSpots: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "parking_available_spots",
			Help: "Minimum available capacity over the configured horizon",
		}, []string{"service", "hotel", "category"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.ReservationNights,
		m.CapacityRejections,
		m.BlockChanges,
		m.SpotsPerUnit,
		m.AvailableSpots,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует SQL запрос
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.DBInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.DBIdle.WithLabelValues(m.serviceName).Set(float64(idle))
	m.DBWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}

func (m *Metrics) RecordReservationNights(mode string, nights int) {
	if m == nil {
		return
	}
	m.ReservationNights.WithLabelValues(m.serviceName, mode).Add(float64(nights))
}

func (m *Metrics) RecordCapacityRejection(mode string) {
	if m == nil {
		return
	}
	m.CapacityRejections.WithLabelValues(m.serviceName, mode).Inc()
}

func (m *Metrics) RecordBlockChange(action string) {
	if m == nil {
		return
	}
	m.BlockChanges.WithLabelValues(m.serviceName, action).Inc()
}

func (m *Metrics) ObserveSpotsPerUnit(spots int) {
	if m == nil {
		return
	}
	m.SpotsPerUnit.WithLabelValues(m.serviceName).Observe(float64(spots))
}

func (m *Metrics) SetAvailableSpots(hotelID, categoryID int64, available int) {
	if m == nil {
		return
	}
	m.AvailableSpots.WithLabelValues(
		m.serviceName,
		strconv.FormatInt(hotelID, 10),
		strconv.FormatInt(categoryID, 10),
	).Set(float64(available))
}
