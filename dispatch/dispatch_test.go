package dispatch

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BioSehnsucht/pyelk/entity"
	"github.com/BioSehnsucht/pyelk/frame"
	"github.com/BioSehnsucht/pyelk/omnistat"
	"github.com/BioSehnsucht/pyelk/outbound"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *entity.Store, *outbound.Queue) {
	t.Helper()
	store := entity.NewStore()
	out := outbound.New(1000, nil)
	d := New(store, out, nil, nil, nil)
	return d, store, out
}

func runFor(ctx context.Context, d *Dispatcher) {
	go d.Run(ctx)
}

func pushLine(t *testing.T, d *Dispatcher, kind string, payload []byte, reserved string) {
	t.Helper()
	line, err := frame.Encode(kind, payload)
	require.NoError(t, err)
	d.Push(line, time.Now())
}

func TestZoneUpdateAppliesToStore(t *testing.T) {
	d, store, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	payload := []byte("001" + "1") // zone 1, true-hex nibble 1 = ZoneOpen
	pushLine(t, d, "ZC", payload, "00")

	require.Eventually(t, func() bool {
		return store.Zones[1].State == entity.ZoneOpen
	}, time.Second, 10*time.Millisecond)
}

func TestStaleFrameDiscarded(t *testing.T) {
	d, store, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	line, err := frame.Encode("ZC", []byte("0011"))
	require.NoError(t, err)
	d.Push(line, time.Now().Add(-200*time.Second))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, entity.ZoneUnconfigured, store.Zones[1].State, "a stale frame must not mutate state")
}

func TestQueueDropsOldestOnOverflow(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	for i := 0; i < QueueCapacity+10; i++ {
		line, err := frame.Encode("XK", nil)
		require.NoError(t, err)
		d.Push(line, time.Now())
	}
	assert.Equal(t, uint64(10), d.Dropped())
}

func TestInstallerExitTriggersRescan(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	rescanned := make(chan struct{}, 1)
	d.onRescan = func() { rescanned <- struct{}{} }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	line, err := frame.Encode("IE", nil)
	require.NoError(t, err)
	d.Push(line, time.Now())

	select {
	case <-rescanned:
	case <-time.After(time.Second):
		t.Fatal("IE never triggered rescan")
	}
}

func TestOmnistatRegistersAppliedToThermostat(t *testing.T) {
	d, store, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	// RESP_DATA envelope addressed to thermostat 3: start register 0
	// (model=7), register 1 (current temp raw 100 -> -40+0.5*100 = 10C).
	nn := byte(3) | 0x80
	data := []byte{0, 7, 100}
	lt := byte(len(data)<<4) | byte(omnistat.RespData)
	sum := nn + lt
	for _, b := range data {
		sum += b
	}
	raw := append([]byte{nn, lt}, data...)
	raw = append(raw, sum)
	for len(raw) < 18 {
		raw = append(raw, 0)
	}
	payload := hex.EncodeToString(raw)

	line, err := frame.Encode("T2", []byte(payload))
	require.NoError(t, err)
	d.Push(line, time.Now())

	require.Eventually(t, func() bool {
		return store.Thermostats[3].OmniModel == 7
	}, time.Second, 10*time.Millisecond)
	assert.InDelta(t, 10.0, store.Thermostats[3].OmniCurrentTempC, 0.001)
}

func TestNotifyRecordsEventLog(t *testing.T) {
	d, store, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	line, err := frame.Encode("CC", []byte("0011"))
	require.NoError(t, err)
	d.Push(line, time.Now())

	require.Eventually(t, func() bool {
		return len(d.EventLog().Recent()) > 0
	}, time.Second, 10*time.Millisecond)

	recent := d.EventLog().Recent()
	out, ok := recent[len(recent)-1].Entity.(*entity.Output)
	require.True(t, ok)
	assert.Equal(t, store.Outputs[1], out)
}

func TestElkRPConnectPausesOutbound(t *testing.T) {
	d, store, out := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	line, err := frame.Encode("RP", []byte("1"))
	require.NoError(t, err)
	d.Push(line, time.Now())

	require.Eventually(t, func() bool {
		return store.Runtime == entity.Paused
	}, time.Second, 10*time.Millisecond)

	out.Push(outbound.Entry{Frame: "zs"})
	sent := 0
	doneCtx, doneCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer doneCancel()
	out.Run(doneCtx, func(string) error {
		sent++
		return nil
	})
	assert.Equal(t, 0, sent, "paused queue must not send")
}

func TestWaitReceivesMatchingKind(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	go func() {
		time.Sleep(20 * time.Millisecond)
		line, _ := frame.Encode("ZS", []byte(string(make([]byte, 208))))
		d.Push(line, time.Now())
	}()

	_, err := d.Wait(ctx, "ZS", time.Second)
	assert.NoError(t, err)
}

func TestWaitTimesOutWithoutReply(t *testing.T) {
	d, _, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runFor(ctx, d)

	_, err := d.Wait(ctx, "ZD", 30*time.Millisecond)
	assert.Error(t, err)
}
