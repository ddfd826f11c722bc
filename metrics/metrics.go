package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ElectionsCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "candideit_elections_created_total",
	Help: "Number of elections created",
})

var CandidatesCreatedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "candideit_candidates_created_total",
	Help: "Number of candidates created",
})

var DuplicateSlugCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "candideit_duplicate_slug_rejections_total",
	Help: "Number of election creations rejected because the owner already uses the slug",
})

var ComparisonsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "candideit_comparisons_total",
	Help: "Number of candidate comparisons served by mode",
}, []string{"mode"})

var UploadedBytesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "candideit_uploaded_bytes_total",
	Help: "Bytes of uploaded assets by kind",
}, []string{"kind"})

var EventsPublishedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "candideit_events_published_total",
	Help: "Domain events handed to the publisher by type and outcome",
}, []string{"type", "outcome"})

var QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "sql_query_duration_seconds",
	Help: "Duration of sql queries in seconds",
}, []string{"query"})
