package synthflow

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"callcenter-platform/internal/calls"
	"callcenter-platform/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, unit string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.SynthflowConfig{
		BaseURL:       srv.URL,
		APIKey:        "test-key",
		StartTimeUnit: unit,
		FetchTimeout:  2 * time.Second,
	})
}

func TestListCalls_DecodesRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if got := r.URL.Query().Get("model_id"); got != "model-1" {
			t.Errorf("unexpected model_id: %q", got)
		}
		w.Write([]byte(`{
			"status": "ok",
			"response": {"calls": [
				{"call_id":"c1","phone_number_from":"+1555","start_time":1700000000,"duration":42,"status":"completed","transcript":"bot: hi"},
				{"call_id":"c2","phone_number_from":"+1666","start_time":"1700000000","status":"something-new"}
			]}
		}`))
	}, "s")

	got, err := c.ListCalls(context.Background(), "model-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].CallID != "c1" || got[0].DurationSeconds != 42 || got[0].Status != calls.StatusCompleted {
		t.Fatalf("unexpected record: %+v", got[0])
	}
	want := time.Unix(1700000000, 0).UTC()
	if !got[0].StartTime.Equal(want) {
		t.Fatalf("start time with unit s: got %v want %v", got[0].StartTime, want)
	}
	// Quoted timestamps and unrecognized statuses must both survive decoding.
	if !got[1].StartTime.Equal(want) || got[1].Status != calls.StatusUnknown {
		t.Fatalf("unexpected record: %+v", got[1])
	}
}

func TestListCalls_MillisecondUnit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","response":{"calls":[{"call_id":"c1","start_time":1700000000000}]}}`))
	}, "ms")

	got, err := c.ListCalls(context.Background(), "m")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !got[0].StartTime.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("start time with unit ms: got %v", got[0].StartTime)
	}
}

func TestListCalls_NonOKStatusIsEmptyNotError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","response":{}}`))
	}, "ms")

	got, err := c.ListCalls(context.Background(), "m")
	if err != nil {
		t.Fatalf("non-ok envelope must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestListCalls_MalformedPayloadIsEmptyNotError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "resp`))
	}, "ms")

	got, err := c.ListCalls(context.Background(), "m")
	if err != nil {
		t.Fatalf("malformed payload must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestListCalls_EmptyModelIDSkipsUpstream(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "ms")

	got, err := c.ListCalls(context.Background(), "")
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result without error, got %v %v", got, err)
	}
	if called {
		t.Fatalf("empty model_id must not hit the upstream")
	}
}

func TestListCalls_RetriesServerErrors(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":"ok","response":{"calls":[{"call_id":"c1"}]}}`))
	}, "ms")

	got, err := c.ListCalls(context.Background(), "m")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected a retry after 502, got %d attempts", attempts)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
}

func TestListCalls_ClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}, "ms")

	if _, err := c.ListCalls(context.Background(), "m"); err == nil {
		t.Fatalf("expected error for 401")
	}
	if attempts != 1 {
		t.Fatalf("401 must not be retried, got %d attempts", attempts)
	}
}
