package httptransport

import "expvar"

var (
	metricMovesQueryTotal  = expvar.NewInt("public_moves_query_total")
	metricMovesQueryErrors = expvar.NewInt("public_moves_query_errors_total")
	metricAdminResetTotal  = expvar.NewInt("admin_reset_total")
)
