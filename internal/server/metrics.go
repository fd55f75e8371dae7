package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var billsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "ratebook",
	Name:      "bills_saved_total",
	Help:      "Number of successfully saved supplier bills.",
})
