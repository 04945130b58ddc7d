package mailsyntax

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// // // // // // // // // //

var (
	validationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mailsyntax",
			Name:      "validation_total",
			Help:      "Validated addresses by result: 'valid' or the name of the rejecting rule",
		},
		[]string{"result"},
	)
	idnConversionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mailsyntax",
			Name:      "idn_conversions_total",
			Help:      "Calls into the IDN converter by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterMetrics registers the package counters. Counting only happens with ConfigObj.Metrics set.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{validationTotal, idnConversionTotal} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

func resultLabel(err error) string {
	if err == nil {
		return "valid"
	}
	if k, ok := KindOf(err); ok {
		return k.Name()
	}
	return "unknown"
}

func (c *ConfigObj) observe(err error) {
	if !c.Metrics {
		return
	}
	validationTotal.WithLabelValues(resultLabel(err)).Inc()
}

func (c *ConfigObj) observeIDN(err error) {
	if !c.Metrics {
		return
	}
	if err != nil {
		idnConversionTotal.WithLabelValues("error").Inc()
	} else {
		idnConversionTotal.WithLabelValues("ok").Inc()
	}
}
