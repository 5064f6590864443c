package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de operaciones del ledger de materiales, expuestos en /metrics.
// Labels: operation = use|restock, result = ok|rejected|error.
var (
	LedgerOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "materials",
		Name:      "ledger_operations_total",
		Help:      "Operaciones de uso/reabastecimiento por resultado.",
	}, []string{"operation", "result"})

	OverMaxWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "materials",
		Name:      "restock_over_max_warnings_total",
		Help:      "Reabastecimientos que dejaron el stock por encima del máximo configurado.",
	})
)

// Resultados estándar para el label result.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)
