package journal

import "expvar"

var (
	metricJournalEnqueuedTotal    = expvar.NewInt("journal_enqueued_total")
	metricJournalDroppedTotal     = expvar.NewInt("journal_dropped_total")
	metricJournalWrittenTotal     = expvar.NewInt("journal_written_total")
	metricJournalWriteErrorsTotal = expvar.NewInt("journal_write_errors_total")
)
