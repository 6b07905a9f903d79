package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "comandas",
		Subsystem: "tickets",
		Name:      "opened_total",
		Help:      "Tickets opened",
	})

	ticketsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comandas",
		Subsystem: "tickets",
		Name:      "closed_total",
		Help:      "Tickets closed by payment method",
	}, []string{"method"})

	ticketRevenue = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comandas",
		Subsystem: "tickets",
		Name:      "revenue_total",
		Help:      "Amount settled by payment method",
	}, []string{"method"})

	mutationsReverted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "comandas",
		Subsystem: "tickets",
		Name:      "reverted_mutations_total",
		Help:      "Optimistic ticket mutations rolled back after a failed write",
	}, []string{"op"})
)
