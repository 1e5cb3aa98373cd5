package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
)

const namespace = "gameroom"

type Metrics struct {
	roomsActive   prometheus.Gauge
	waiting       prometheus.Gauge
	connections   prometheus.Gauge
	matches       *prometheus.CounterVec
	actions       *prometheus.CounterVec
	gamesFinished *prometheus.CounterVec
	disconnects   prometheus.Counter
	statsWrites   *prometheus.CounterVec
}

// New registers every collector on registerer.
func New(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		roomsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Number of live rooms",
		}),
		waiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "waiting_players",
			Help:      "Number of players waiting for an opponent",
		}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Number of open client connections",
		}),
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Rooms created by the matchmaker",
		}, []string{"game_type"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Game actions by outcome",
		}, []string{"game_type", "result"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached a terminal state",
		}, []string{"game_type", "reason"}),
		disconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_disconnects_total",
			Help:      "Rooms torn down by a player disconnect",
		}),
		statsWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_writes_total",
			Help:      "Statistics sink writes by status",
		}, []string{"status"}),
	}

	registerer.MustRegister(
		m.roomsActive,
		m.waiting,
		m.connections,
		m.matches,
		m.actions,
		m.gamesFinished,
		m.disconnects,
		m.statsWrites,
	)

	return m
}

func (that *Metrics) SetRooms(n int) {
	that.roomsActive.Set(float64(n))
}

func (that *Metrics) SetWaiting(n int) {
	that.waiting.Set(float64(n))
}

func (that *Metrics) ConnectionOpened() {
	that.connections.Inc()
}

func (that *Metrics) ConnectionClosed() {
	that.connections.Dec()
}

func (that *Metrics) MatchMade(kind entity.GameKind) {
	that.matches.WithLabelValues(string(kind)).Inc()
}

func (that *Metrics) ActionAccepted(kind entity.GameKind) {
	that.actions.WithLabelValues(string(kind), "accepted").Inc()
}

func (that *Metrics) ActionRejected(kind entity.GameKind) {
	that.actions.WithLabelValues(string(kind), "rejected").Inc()
}

func (that *Metrics) GameFinished(kind entity.GameKind, reason string) {
	that.gamesFinished.WithLabelValues(string(kind), reason).Inc()
}

func (that *Metrics) RoomAbandoned() {
	that.disconnects.Inc()
}

func (that *Metrics) StatsWritten(err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}

	that.statsWrites.WithLabelValues(status).Inc()
}
