package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PurchasesTotal counts successful purchases.
	PurchasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweetshop_purchases_total",
		Help: "Total number of successful sweet purchases.",
	})

	// RestocksTotal counts successful restocks.
	RestocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweetshop_restocks_total",
		Help: "Total number of successful sweet restocks.",
	})

	// OutOfStockTotal counts purchases rejected by the zero-stock guard.
	OutOfStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweetshop_out_of_stock_total",
		Help: "Total number of purchases rejected because the sweet was out of stock.",
	})
)
