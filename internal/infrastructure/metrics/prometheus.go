package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes conduct counters to Prometheus
type Recorder struct {
	votesCast           *prometheus.CounterVec
	resolutionOutcomes  *prometheus.CounterVec
	meetingsCompleted   prometheus.Counter
	participantsCreated prometheus.Counter
}

// NewRecorder creates the collectors and registers them on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		votesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weg",
			Name:      "votes_cast_total",
			Help:      "Votes written by batch casts, by choice and operation.",
		}, []string{"choice", "operation"}),
		resolutionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weg",
			Name:      "resolution_calculations_total",
			Help:      "Majority calculations, by majority type and result.",
		}, []string{"majority_type", "result"}),
		meetingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weg",
			Name:      "meetings_completed_total",
			Help:      "Meetings moved to completed.",
		}),
		participantsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weg",
			Name:      "participants_snapshotted_total",
			Help:      "Participants created by meeting starts.",
		}),
	}
	reg.MustRegister(r.votesCast, r.resolutionOutcomes, r.meetingsCompleted, r.participantsCreated)
	return r
}

// VotesCast counts inserted and updated votes of one choice
func (r *Recorder) VotesCast(choice, operation string, n int) {
	r.votesCast.WithLabelValues(choice, operation).Add(float64(n))
}

// ResolutionCalculated counts a calculator run
func (r *Recorder) ResolutionCalculated(majorityType, result string) {
	r.resolutionOutcomes.WithLabelValues(majorityType, result).Inc()
}

// MeetingCompleted counts a completed meeting
func (r *Recorder) MeetingCompleted() {
	r.meetingsCompleted.Inc()
}

// ParticipantsCreated counts snapshotted participants
func (r *Recorder) ParticipantsCreated(n int) {
	r.participantsCreated.Add(float64(n))
}
