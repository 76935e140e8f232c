// internal/actuator/controller_test.go
package actuator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake driver ----

type fakeDriver struct {
	writes []Command
	fail   bool
}

func (f *fakeDriver) Write(_ context.Context, cmd Command) error {
	f.writes = append(f.writes, cmd)
	if f.fail {
		return errors.New("write endpoint down")
	}
	return nil
}

type blockingDriver struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingDriver) Write(ctx context.Context, _ Command) error {
	close(b.entered)
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ---- tests ----

func TestApply_FirstCallAlwaysWrites(t *testing.T) {
	d := &fakeDriver{}
	c := NewController(d, nil)

	_, ok := c.Last()
	require.False(t, ok)

	out := c.Apply(context.Background(), Off)
	assert.Equal(t, Issued, out.Action)
	assert.Equal(t, []Command{Off}, d.writes)

	last, ok := c.Last()
	assert.True(t, ok)
	assert.Equal(t, Off, last)
}

func TestLast_NotBlockedBySlowWrite(t *testing.T) {
	d := &blockingDriver{entered: make(chan struct{}), release: make(chan struct{})}
	c := NewController(d, nil)

	done := make(chan Outcome, 1)
	go func() { done <- c.Apply(context.Background(), On) }()
	<-d.entered

	got := make(chan bool, 1)
	go func() {
		_, ok := c.Last()
		got <- ok
	}()
	select {
	case ok := <-got:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Last blocked while a write was in flight")
	}

	close(d.release)
	assert.Equal(t, Issued, (<-done).Action)
	last, ok := c.Last()
	assert.True(t, ok)
	assert.Equal(t, On, last)
}

func TestApply_DebouncesRepeatedCommand(t *testing.T) {
	d := &fakeDriver{}
	c := NewController(d, nil)

	assert.Equal(t, Issued, c.Apply(context.Background(), On).Action)
	for i := 0; i < 5; i++ {
		assert.Equal(t, Skipped, c.Apply(context.Background(), On).Action)
	}
	assert.Equal(t, []Command{On}, d.writes)

	assert.Equal(t, Issued, c.Apply(context.Background(), Off).Action)
	assert.Equal(t, []Command{On, Off}, d.writes)
}

func TestApply_FailureDoesNotAdvanceLastIssued(t *testing.T) {
	d := &fakeDriver{}
	c := NewController(d, nil)
	require.Equal(t, Issued, c.Apply(context.Background(), Off).Action)

	d.fail = true
	out := c.Apply(context.Background(), On)
	require.Equal(t, Failed, out.Action)

	var aerr *Error
	require.True(t, errors.As(out.Err, &aerr))
	assert.Equal(t, On, aerr.Command)
	assert.NotEmpty(t, out.Reason())

	last, _ := c.Last()
	assert.Equal(t, Off, last)

	// next cycle retries the same transition
	d.fail = false
	assert.Equal(t, Issued, c.Apply(context.Background(), On).Action)
	assert.Equal(t, []Command{Off, On, On}, d.writes)
}

func TestApply_FailedFirstWriteKeepsUnset(t *testing.T) {
	d := &fakeDriver{fail: true}
	c := NewController(d, nil)

	assert.Equal(t, Failed, c.Apply(context.Background(), Off).Action)
	_, ok := c.Last()
	assert.False(t, ok)

	d.fail = false
	assert.Equal(t, Issued, c.Apply(context.Background(), Off).Action)
}

func TestCommandFor(t *testing.T) {
	assert.Equal(t, On, CommandFor(true))
	assert.Equal(t, Off, CommandFor(false))
	assert.Equal(t, "on", On.String())
}

func TestRemoteDriver_Levels(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Query().Get("D1"))
		fmt.Fprint(w, "OK")
	}))
	defer srv.Close()

	d, err := NewRemoteDriver(RemoteConfig{
		URL: func(level string) string { return srv.URL + "/write?D1=" + level },
	}, srv.Client())
	require.NoError(t, err)

	require.NoError(t, d.Write(context.Background(), On))
	require.NoError(t, d.Write(context.Background(), Off))
	assert.Equal(t, []string{"1", "0"}, got)
}

func TestRemoteDriver_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d, err := NewRemoteDriver(RemoteConfig{
		URL: func(level string) string { return srv.URL },
	}, srv.Client())
	require.NoError(t, err)

	assert.Error(t, d.Write(context.Background(), On))
}

type fakeCoil struct {
	unit uint8
	addr uint16
	on   []bool
}

func (f *fakeCoil) WriteCoil(unitID uint8, addr uint16, on bool) error {
	f.unit, f.addr = unitID, addr
	f.on = append(f.on, on)
	return nil
}

func TestCoilDriver(t *testing.T) {
	cli := &fakeCoil{}
	d, err := NewCoilDriver(cli, 3, 12)
	require.NoError(t, err)

	require.NoError(t, d.Write(context.Background(), On))
	require.NoError(t, d.Write(context.Background(), Off))

	assert.Equal(t, uint8(3), cli.unit)
	assert.Equal(t, uint16(12), cli.addr)
	assert.Equal(t, []bool{true, false}, cli.on)
}
