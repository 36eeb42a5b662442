package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"i4.energy/across/btgw/hm1x"
)

func newTestServer(t *testing.T, ch *hm1x.FakeChannel) *Server {
	t.Helper()
	config, err := hm1x.NewConfigBuilder().
		WithDialer(hm1x.DialerFunc(func(context.Context) (hm1x.Channel, error) { return ch, nil })).
		WithClock(hm1x.NewFakeClock()).
		WithSkipConnectionCheck(true).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}
	d, err := hm1x.New(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	return NewServer(slog.New(slog.DiscardHandler), d, time.Millisecond)
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServerStatus(t *testing.T) {
	ch := hm1x.NewFakeChannel()
	s := newTestServer(t, ch)

	ch.SendData("OK+CONB:001122334455")
	if res, err := s.poll(context.Background()); err != nil || res != hm1x.PollHandled {
		t.Fatalf("expected handled poll, got %v (%v)", res, err)
	}

	rec := serve(s, http.MethodGet, "/status", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got struct {
		BLEConnected bool   `json:"ble_connected"`
		BLEAddress   string `json:"ble_address"`
		Polling      bool   `json:"polling"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected error decoding %q: %v", rec.Body.String(), err)
	}
	if !got.BLEConnected || got.BLEAddress != "001122334455" {
		t.Errorf("unexpected status %s", rec.Body.String())
	}
}

func TestServerVersion(t *testing.T) {
	t.Run("Version is returned", func(t *testing.T) {
		s := newTestServer(t, hm1x.NewFakeChannel().Reply("AT+VERR?", "OK+Get:HMSoft V110"))

		rec := serve(s, http.MethodGet, "/version", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"HMSoft V110"`) {
			t.Errorf("unexpected body %s", rec.Body.String())
		}
	})

	t.Run("Silent module is a gateway timeout", func(t *testing.T) {
		s := newTestServer(t, hm1x.NewFakeChannel())

		rec := serve(s, http.MethodGet, "/version", "")
		if rec.Code != http.StatusGatewayTimeout {
			t.Errorf("expected 504, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"message"`) {
			t.Errorf("expected JSON error, got %s", rec.Body.String())
		}
	})
}

func TestServerSetName(t *testing.T) {
	t.Run("Name is set", func(t *testing.T) {
		ch := hm1x.NewFakeChannel().Reply("AT+NAMEDevice1", "OK+Set:Device1")
		s := newTestServer(t, ch)

		rec := serve(s, http.MethodPut, "/name/edr", `{"name":"Device1"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got := ch.Written(); !slices.Equal(got, []string{"AT+NAMEDevice1"}) {
			t.Errorf("unexpected frames %q", got)
		}
	})

	tests := []struct {
		name   string
		target string
		body   string
		code   int
	}{
		{"Unknown radio", "/name/wifi", `{"name":"x"}`, http.StatusNotFound},
		{"Malformed JSON", "/name/ble", `{"name":`, http.StatusBadRequest},
		{"Empty name", "/name/ble", `{"name":""}`, http.StatusBadRequest},
		{"Name too long", "/name/ble", `{"name":"` + strings.Repeat("n", 29) + `"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := hm1x.NewFakeChannel()
			s := newTestServer(t, ch)

			rec := serve(s, http.MethodPut, tt.target, tt.body)
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
			if got := ch.Written(); len(got) != 0 {
				t.Errorf("expected nothing sent, got %q", got)
			}
		})
	}
}

func TestServerData(t *testing.T) {
	t.Run("POST writes through", func(t *testing.T) {
		ch := hm1x.NewFakeChannel()
		s := newTestServer(t, ch)

		rec := serve(s, http.MethodPost, "/data", "hello peer")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if got := ch.Written(); !slices.Equal(got, []string{"hello peer"}) {
			t.Errorf("unexpected frames %q", got)
		}
	})

	t.Run("Empty POST is rejected", func(t *testing.T) {
		s := newTestServer(t, hm1x.NewFakeChannel())

		if rec := serve(s, http.MethodPost, "/data", ""); rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("GET drains the received data", func(t *testing.T) {
		ch := hm1x.NewFakeChannel()
		s := newTestServer(t, ch)

		ch.SendData("from peer")
		rec := serve(s, http.MethodGet, "/data", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "from peer" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}

		rec = serve(s, http.MethodGet, "/data", "")
		if rec.Body.Len() != 0 {
			t.Errorf("expected empty second read, got %q", rec.Body.String())
		}
	})
}

func TestServerProbe(t *testing.T) {
	s := newTestServer(t, hm1x.NewFakeChannel().Reply("AT", "OK"))

	rec := serve(s, http.MethodPost, "/probe", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestServerRun(t *testing.T) {
	ch := hm1x.NewFakeChannel()
	s := newTestServer(t, ch)
	ch.SendData("OK+CONE:AABBCCDDEEFF")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	deadline := time.After(2 * time.Second)
	for {
		rec := serve(s, http.MethodGet, "/status", "")
		if strings.Contains(rec.Body.String(), `"edr_connected":true`) {
			break
		}
		select {
		case <-deadline:
			t.Fatal("poll loop never picked up the notification")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error from Run(): %v", err)
		}
	case <-time.After(time.Second):
		t.Error("Run() did not stop after cancel")
	}
}

func TestServerRunRejectsNonPositiveInterval(t *testing.T) {
	s := newTestServer(t, hm1x.NewFakeChannel())
	s.PollInterval = 0

	if err := s.Run(context.Background()); err == nil {
		t.Error("expected error for zero poll interval")
	}
}
