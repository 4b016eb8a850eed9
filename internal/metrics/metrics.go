package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TutorialViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tutorial_views_total",
			Help: "Total public tutorial reads",
		},
	)

	Executions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "code_executions_total",
			Help: "Code execution requests by language and outcome",
		},
		[]string{"language", "outcome"},
	)

	Uploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Image upload attempts by outcome",
		},
		[]string{"outcome"},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(TutorialViews)
	prometheus.MustRegister(Executions)
	prometheus.MustRegister(Uploads)
}
