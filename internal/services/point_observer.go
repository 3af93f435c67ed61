package services

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/onerilhan/go-point-api/internal/apperrors"
	"github.com/onerilhan/go-point-api/internal/models"
	"github.com/onerilhan/go-point-api/internal/utils"
)

// PointObserver charge/use işlemlerinin telemetrisini toplar
type PointObserver interface {
	RecordOperation(txType models.TransactionType, amount int64, duration time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) RecordOperation(models.TransactionType, int64, time.Duration, error) {}

// PrometheusPointObserver puan işlemlerini Prometheus'a aktarır
type PrometheusPointObserver struct {
	duration   *prometheus.HistogramVec
	operations *prometheus.CounterVec
	points     *prometheus.CounterVec
}

// NewPrometheusPointObserver metrikleri reg üzerine kaydeder; reg nil ise default registerer
func NewPrometheusPointObserver(namespace string, reg prometheus.Registerer) (*PrometheusPointObserver, error) {
	if namespace == "" {
		namespace = "point_service"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	observer := &PrometheusPointObserver{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of point mutations including time spent waiting for the user lock.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"type"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Point mutations by type and outcome.",
		}, []string{"type", "outcome"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_total",
			Help:      "Points moved by committed mutations.",
		}, []string{"type"}),
	}

	var err error
	if observer.duration, err = utils.RegisterOrExisting(reg, observer.duration); err != nil {
		return nil, err
	}
	if observer.operations, err = utils.RegisterOrExisting(reg, observer.operations); err != nil {
		return nil, err
	}
	if observer.points, err = utils.RegisterOrExisting(reg, observer.points); err != nil {
		return nil, err
	}

	return observer, nil
}

// RecordOperation tek bir charge/use sonucunu kaydeder
func (o *PrometheusPointObserver) RecordOperation(txType models.TransactionType, amount int64, duration time.Duration, err error) {
	if o == nil {
		return
	}

	label := strings.ToLower(string(txType))
	o.duration.WithLabelValues(label).Observe(duration.Seconds())

	switch {
	case err == nil:
		o.operations.WithLabelValues(label, "ok").Inc()
		o.points.WithLabelValues(label).Add(float64(amount))
	case apperrors.IsInvalidArgument(err):
		o.operations.WithLabelValues(label, "rejected").Inc()
	default:
		o.operations.WithLabelValues(label, "error").Inc()
	}
}
