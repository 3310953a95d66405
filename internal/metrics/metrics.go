package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OpenConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "superxo_open_connections",
		Help: "Currently open websocket connections",
	})
	LiveRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "superxo_live_rooms",
		Help: "Rooms currently held in memory",
	})
	RoomsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "superxo_rooms_created_total",
		Help: "Total rooms created",
	})
	MovesPlayed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "superxo_moves_played_total",
		Help: "Total moves accepted",
	})
	Reconnects = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "superxo_reconnects_total",
		Help: "Total successful reconnections",
	})
	RoomTimeouts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "superxo_room_timeouts_total",
		Help: "Total rooms deleted by timers or the sweep",
	})
)

func init() {
	prometheus.MustRegister(OpenConnections)
	prometheus.MustRegister(LiveRooms)
	prometheus.MustRegister(RoomsCreated)
	prometheus.MustRegister(MovesPlayed)
	prometheus.MustRegister(Reconnects)
	prometheus.MustRegister(RoomTimeouts)
}
