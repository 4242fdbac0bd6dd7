package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BillsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nailspa_bills_saved_total",
		Help: "Bills saved, by whether the save created or replaced a bill.",
	}, []string{"mode"})

	BillsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nailspa_bills_deleted_total",
		Help: "Bills deleted.",
	})

	PersistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nailspa_persist_failures_total",
		Help: "Failed writes to the key-value store, by record key.",
	}, []string{"key"})

	BackupImports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nailspa_backup_imports_total",
		Help: "Backup import attempts, by result.",
	}, []string{"result"})
)
