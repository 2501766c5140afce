package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса
// Методы записи безопасны для nil-получателя, что позволяет отключать метрики конфигурацией
// Каждый экземпляр использует собственный registry, поэтому New можно вызывать повторно (например, в тестах)
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	bookingsCreated   *prometheus.CounterVec
	sweepTransitions  *prometheus.CounterVec
	sweepDuration     *prometheus.HistogramVec
	qrAccessAttempts  *prometheus.CounterVec
	notificationsSent *prometheus.CounterVec
}

// New создает и регистрирует метрики
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections", Help: "Open connections", ConstLabels: constLabels,
		}, []string{"db"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections", Help: "Connections in use", ConstLabels: constLabels,
		}, []string{"db"}),
		dbIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections", Help: "Idle connections", ConstLabels: constLabels,
		}, []string{"db"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count", Help: "Total number of connections waited for", ConstLabels: constLabels,
		}, []string{"db"}),

		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_bookings_created_total",
			Help:        "Bookings created, by tariff",
			ConstLabels: constLabels,
		}, []string{"tariff"}),

		sweepTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_sweep_transitions_total",
			Help:        "Booking transitions performed by the expiration sweep",
			ConstLabels: constLabels,
		}, []string{"result"}),

		sweepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "parking_sweep_duration_seconds",
			Help:        "Expiration sweep run time",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{}),

		qrAccessAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_qr_access_attempts_total",
			Help:        "QR access attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"granted", "reason"}),

		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_notifications_total",
			Help:        "Notifications published to the fan-out, by group and outcome",
			ConstLabels: constLabels,
		}, []string{"group", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.bookingsCreated,
		m.sweepTransitions,
		m.sweepDuration,
		m.qrAccessAttempts,
		m.notificationsSent,
	)

	return m
}

// Handler HTTP-обработчик для эндпоинта метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает registry (нужен для тестов и дополнительных коллекторов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) SetDBPoolStats(db string, open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(db).Set(float64(open))
	m.dbInUseConns.WithLabelValues(db).Set(float64(inUse))
	m.dbIdleConns.WithLabelValues(db).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(waitCount))
}

func (m *Metrics) IncBookingCreated(tariff string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(tariff).Inc()
}

// ObserveSweep фиксирует итог прогона планировщика просрочек
func (m *Metrics) ObserveSweep(completed, cancelled, skipped, failed int, duration time.Duration) {
	if m == nil {
		return
	}
	m.sweepTransitions.WithLabelValues("completed").Add(float64(completed))
	m.sweepTransitions.WithLabelValues("cancelled").Add(float64(cancelled))
	m.sweepTransitions.WithLabelValues("skipped").Add(float64(skipped))
	m.sweepTransitions.WithLabelValues("failed").Add(float64(failed))
	m.sweepDuration.WithLabelValues().Observe(duration.Seconds())
}

func (m *Metrics) IncQRAccess(granted bool, reason string) {
	if m == nil {
		return
	}
	m.qrAccessAttempts.WithLabelValues(strconv.FormatBool(granted), reason).Inc()
}

func (m *Metrics) IncNotification(group, outcome string) {
	if m == nil {
		return
	}
	m.notificationsSent.WithLabelValues(group, outcome).Inc()
}
