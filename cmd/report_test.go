package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/chrisdamba/foodinsights/internal/analytics"
	"github.com/chrisdamba/foodinsights/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDestination struct {
	writeErr error
	closeErr error
	written  int
	closed   bool
}

func (d *stubDestination) WriteMessage(string, []byte) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.written++
	return nil
}

func (d *stubDestination) Close() error {
	d.closed = true
	return d.closeErr
}

func TestExportReport(t *testing.T) {
	caller := analytics.Customer{CustomerID: "c1"}
	payload := &analytics.CustomerAnalytics{CustomerID: "c1"}
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	writeFailed := errors.New("broker down")
	closeFailed := errors.New("flush failed")

	tests := []struct {
		name      string
		dest      *stubDestination
		wantErrs  []error
		wantClean bool
	}{
		{name: "export and close succeed", dest: &stubDestination{}, wantClean: true},
		{name: "close failure is returned", dest: &stubDestination{closeErr: closeFailed}, wantErrs: []error{closeFailed}},
		{name: "both failures are returned", dest: &stubDestination{writeErr: writeFailed, closeErr: closeFailed}, wantErrs: []error{writeFailed, closeFailed}},
		{name: "export failure still closes", dest: &stubDestination{writeErr: writeFailed}, wantErrs: []error{writeFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exportReport(output.NewExporter(tt.dest), caller, payload, now)

			assert.True(t, tt.dest.closed)
			if tt.wantClean {
				require.NoError(t, err)
				assert.Equal(t, 1, tt.dest.written)
				return
			}
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestWriteErrorResult(t *testing.T) {
	var buf bytes.Buffer

	err := writeErrorResult(&buf, analytics.ErrHotelNotFound)

	assert.ErrorIs(t, err, analytics.ErrHotelNotFound)
	assert.JSONEq(t, `{"error": "`+analytics.ErrHotelNotFound.Error()+`"}`, buf.String())
}
