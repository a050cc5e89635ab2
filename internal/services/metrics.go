package services

import "github.com/prometheus/client_golang/prometheus"

// Mutation operations reported in the "op" label.
const (
	opUpdate = "update"
	opReset  = "reset"
	opToggle = "toggle"
)

var (
	// settingsMutations counts successful store mutations by operation.
	settingsMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stella_settings_mutations_total",
			Help: "Total number of successful settings mutations.",
		},
		[]string{"op"},
	)

	// settingsLogEntries tracks the current length of the activity log.
	settingsLogEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stella_settings_log_entries",
			Help: "Current number of entries in the settings activity log.",
		},
	)
)

func init() {
	prometheus.MustRegister(settingsMutations, settingsLogEntries)
}
