package copilotsdk_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/stretchr/testify/require"
)

func TestMonitorExpiresIdleSession(t *testing.T) {
	s, clk, rec := newTestSession(t, nil)
	require.NoError(t, s.Begin("tok", alice))

	m := s.StartMonitor(5 * time.Millisecond)
	t.Cleanup(m.Stop)

	// Active sessions are left alone.
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, copilotsdk.Active, s.State())
	require.Empty(t, rec.Notices())

	clk.Advance(time.Hour + time.Second)

	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after expiring the session")
	}

	require.Equal(t, copilotsdk.LoggedOut, s.State())
	require.Equal(t, []string{copilotsdk.SessionExpiredNotice}, rec.Notices())
	require.Equal(t, []string{copilotsdk.SignInPath}, rec.Redirects())
}

func TestMonitorExpiryDoesNotWipeNewLogin(t *testing.T) {
	storage := newStallingStorage()
	s, clk, rec := newTestSession(t, storage)
	require.NoError(t, s.Begin("old", alice))

	clk.Advance(time.Hour + time.Second)
	began := beginDuringLoad(s, storage, "fresh")

	m := s.StartMonitor(5 * time.Millisecond)
	t.Cleanup(m.Stop)

	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop after expiring the session")
	}
	require.NoError(t, <-began)

	require.Equal(t, "fresh", s.Token())
	require.Equal(t, copilotsdk.Active, s.State())
	require.Equal(t, []string{copilotsdk.SessionExpiredNotice}, rec.Notices())
}

func TestMonitorIgnoresLoggedOutSession(t *testing.T) {
	s, clk, rec := newTestSession(t, nil)

	m := s.StartMonitor(5 * time.Millisecond)
	clk.Advance(24 * time.Hour)
	time.Sleep(20 * time.Millisecond)
	m.Stop()

	require.Empty(t, rec.Notices())
	require.Empty(t, rec.Redirects())
}

func TestLogoutStopsMonitor(t *testing.T) {
	s, _, rec := newTestSession(t, nil)
	require.NoError(t, s.Begin("tok", alice))

	m := s.StartMonitor(time.Hour)
	s.Logout()

	select {
	case <-m.Done():
	default:
		t.Fatal("logout must wait for the monitor to stop")
	}
	require.Empty(t, rec.Notices())

	// Stopping again is harmless.
	m.Stop()
}

func TestStartMonitorReplacesPrevious(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	first := s.StartMonitor(time.Hour)
	second := s.StartMonitor(time.Hour)
	t.Cleanup(second.Stop)

	select {
	case <-first.Done():
	default:
		t.Fatal("previous monitor still running")
	}
}
