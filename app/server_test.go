package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeQueue struct{ err error }

func (f fakeQueue) HealthCheck(context.Context) error { return f.err }

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         fakePinger
		queue      healthChecker
		wantStatus int
		wantBody   string
	}{
		{name: "ready", queue: fakeQueue{}, wantStatus: http.StatusOK, wantBody: `"database":"ok"`},
		{name: "no queue", wantStatus: http.StatusOK},
		{name: "database down", db: fakePinger{err: errors.New("refused")}, queue: fakeQueue{}, wantStatus: http.StatusServiceUnavailable, wantBody: "refused"},
		{name: "queue down", queue: fakeQueue{err: errors.New("pool closed")}, wantStatus: http.StatusServiceUnavailable, wantBody: "pool closed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			readinessHandler(tt.db, tt.queue)(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}
