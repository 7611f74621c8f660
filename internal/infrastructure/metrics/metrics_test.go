package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthurdotwork/socialchat/internal/domain"
	"github.com/arthurdotwork/socialchat/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var _ domain.Recorder = (*metrics.Metrics)(nil)

func TestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("it should track connections and users", func(t *testing.T) {
		m := metrics.New()

		m.ConnectionOpened()
		m.ConnectionOpened()
		m.ConnectionClosed()
		m.UsersOnline(3)

		require.Equal(t, float64(1), testutil.ToFloat64(m.OpenConnections))
		require.Equal(t, float64(3), testutil.ToFloat64(m.OnlineUsers))
	})

	t.Run("it should count events by status", func(t *testing.T) {
		m := metrics.New()

		m.EventDelivered(domain.EventRoomReady)
		m.EventDelivered(domain.EventRoomReady)
		m.EventDropped(domain.EventRoomReady)
		m.Registration("rejected")
		m.RoomCreated()

		require.Equal(t, float64(2), testutil.ToFloat64(m.EventCounter.WithLabelValues(domain.EventRoomReady, "delivered")))
		require.Equal(t, float64(1), testutil.ToFloat64(m.EventCounter.WithLabelValues(domain.EventRoomReady, "dropped")))
		require.Equal(t, float64(1), testutil.ToFloat64(m.RegistrationCounter.WithLabelValues("rejected")))
		require.Equal(t, float64(1), testutil.ToFloat64(m.RoomCounter))
	})

	t.Run("it should expose the metrics over http", func(t *testing.T) {
		m := metrics.New()
		m.RoomCreated()

		srv := httptest.NewServer(m.Handler())
		defer srv.Close()

		res, err := http.Get(srv.URL)
		require.NoError(t, err)
		defer res.Body.Close()

		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "socialchat_rooms_created_total 1")
	})
}
