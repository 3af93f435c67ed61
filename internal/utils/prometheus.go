package utils

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterOrExisting collector'ı kaydeder; aynı tanımla kayıtlı bir collector
// varsa onu döner. Aynı registry ile birden fazla kurulum yapılabilir.
func RegisterOrExisting[T prometheus.Collector](reg prometheus.Registerer, collector T) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return collector, fmt.Errorf("metrik kaydedilemedi: %w", err)
	}
	return collector, nil
}
