package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

func TestNewImportMetricsRegistersInstruments(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := newImportMetrics(registry, Config{ServiceName: "enervue", Environment: "test"})

	m.IncJobRun("completed")
	m.ObserveJobDuration("completed", 0)
	m.AddRowsAccepted(42)
	m.AddRowsRejected(ImportRowReasonParseError, 3)
	m.IncJobError(errors.New("boom"))

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families")
	}
}

func TestClassifyImportErrorType(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ImportErrorTypeUnknown},
		{"deadline", context.DeadlineExceeded, ImportErrorTypeDeadlineExceeded},
		{"db", gorm.ErrInvalidTransaction, ImportErrorTypeDB},
		{"validation", errors.New("empty file"), ImportErrorTypeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyImportErrorType(tc.err); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
