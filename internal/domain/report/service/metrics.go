package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hb_reports_imported_total",
		Help: "Number of match reports successfully imported.",
	})
	reportsDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hb_reports_duplicate_total",
		Help: "Number of match reports skipped because they were already stored.",
	})
	reportsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hb_reports_failed_total",
		Help: "Number of match reports that could not be imported.",
	})
	unknownActions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hb_actions_unknown_total",
		Help: "Number of timeline events stored with an unrecognized action type.",
	})
)
