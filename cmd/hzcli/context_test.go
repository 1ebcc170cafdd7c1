package main

import (
	"errors"
	"testing"

	"hzcli/internal/logging"
)

type stubCloser struct {
	err    error
	closed bool
}

func (c *stubCloser) Close() error {
	c.closed = true
	return c.err
}

func TestCloseStoreReportsReleaseFailure(t *testing.T) {
	releaseErr := errors.New("unlock failed")
	runErr := errors.New("command failed")

	tests := []struct {
		name     string
		closeErr error
		runErr   error
		want     error
	}{
		{"clean", nil, nil, nil},
		{"command error kept", nil, runErr, runErr},
		{"release error surfaces", releaseErr, nil, releaseErr},
		{"command error wins", releaseErr, runErr, runErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &stubCloser{err: tt.closeErr}
			got := closeStore(logging.NewNop(), c, tt.runErr)
			if !c.closed {
				t.Fatal("expected store to be closed")
			}
			if !errors.Is(got, tt.want) || (tt.want == nil && got != nil) {
				t.Fatalf("closeStore = %v, want %v", got, tt.want)
			}
		})
	}
}
