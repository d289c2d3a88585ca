package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCloser struct {
	err    error
	closed bool
}

func (c *fakeCloser) Close() error {
	c.closed = true
	return c.err
}

func TestCloseWithError(t *testing.T) {
	errClose := errors.New("disk full")
	errWrite := errors.New("short write")

	tests := []struct {
		name     string
		closeErr error
		prior    error
		want     error
		wantMsg  string
	}{
		{name: "clean close keeps nil", closeErr: nil, prior: nil, want: nil},
		{name: "close error surfaces", closeErr: errClose, prior: nil, want: errClose, wantMsg: "close grid.csv: disk full"},
		{name: "earlier error wins", closeErr: errClose, prior: errWrite, want: errWrite, wantMsg: "short write"},
		{name: "earlier error kept on clean close", closeErr: nil, prior: errWrite, want: errWrite, wantMsg: "short write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCloser{err: tt.closeErr}
			err := tt.prior
			CloseWithError(c, "grid.csv", &err)

			assert.True(t, c.closed)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestCloseWithErrorDeferred(t *testing.T) {
	errClose := errors.New("disk full")
	save := func(c *fakeCloser) (err error) {
		defer CloseWithError(c, "out.png", &err)
		return nil
	}

	assert.NoError(t, save(&fakeCloser{}))
	assert.ErrorIs(t, save(&fakeCloser{err: errClose}), errClose)
}
