package ws

import "expvar"

var (
	metricWSConnectionsTotal = expvar.NewInt("ws_connections_total")
	metricWSUpgradeErrors    = expvar.NewInt("ws_upgrade_errors_total")
	metricWSFramesInTotal    = expvar.NewInt("ws_frames_in_total")
	metricWSBadFramesTotal   = expvar.NewInt("ws_bad_frames_total")
)
