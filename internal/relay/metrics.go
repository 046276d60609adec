package relay

import "expvar"

var (
	metricConnectionsActive  = expvar.NewInt("relay_connections_active")
	metricConnectionsTotal   = expvar.NewInt("relay_connections_total")
	metricMovesAcceptedTotal = expvar.NewInt("relay_moves_accepted_total")
	metricMovesRejectedTotal = expvar.NewInt("relay_moves_rejected_total")
	metricMovesDroppedTotal  = expvar.NewInt("relay_moves_dropped_total")
	metricSendFailuresTotal  = expvar.NewInt("relay_send_failures_total")
)
