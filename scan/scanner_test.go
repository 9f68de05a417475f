package scan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BioSehnsucht/pyelk/dispatch"
	"github.com/BioSehnsucht/pyelk/entity"
	"github.com/BioSehnsucht/pyelk/frame"
	"github.com/BioSehnsucht/pyelk/msg"
	"github.com/BioSehnsucht/pyelk/outbound"
)

func newHarness(t *testing.T) (*Scanner, *entity.Store, *outbound.Queue, *dispatch.Dispatcher) {
	t.Helper()
	store := entity.NewStore()
	out := outbound.New(1000, nil)
	d := dispatch.New(store, out, nil, nil, nil)
	s := New(store, out, d, nil)
	s.ZoneStatusTimeout = 50 * time.Millisecond
	s.ZoneDefinitionTimeout = 50 * time.Millisecond
	s.DescriptionTimeout = 50 * time.Millisecond
	return s, store, out, d
}

// runDescriptionResponder drains out, answering every description
// request with a reply looked up in names. Absent indices are skipped
// and answered with the next present index (or upper+1, signalling
// "nothing left"), mirroring the panel's skip-empty behavior (§4.7).
func runDescriptionResponder(ctx context.Context, out *outbound.Queue, d *dispatch.Dispatcher, names map[int]string, upper int) {
	go out.Run(ctx, func(line string) error {
		f, err := frame.Decode(line)
		if err != nil || f.Kind != string(msg.DescriptionRequest) {
			return nil
		}
		dm, err := msg.DecodeDescription(padPayload(string(f.Payload)))
		if err != nil {
			return nil
		}
		n := dm.Number
		name := ""
		for n <= upper {
			if v, ok := names[n]; ok {
				name = v
				break
			}
			n++
		}
		if n > upper {
			n = upper + 1
		}
		replyLine, err := frame.Encode(string(msg.DescriptionReply), []byte(encodeDescription(dm.Type, n, name)))
		if err != nil {
			return nil
		}
		d.Push(replyLine, time.Now())
		return nil
	})
}

func padPayload(p string) string {
	for len(p) < 21 {
		p += " "
	}
	return p
}

func encodeDescription(t msg.DescriptionType, number int, name string) string {
	payload := msg.EncodeDescriptionRequest(t, number)
	for len(name) < 16 {
		name += " "
	}
	return payload + name
}

func TestPhaseStringCoversAllPhases(t *testing.T) {
	for p := Idle; p <= Version; p++ {
		assert.NotEqual(t, "unknown", p.String())
	}
}

func TestScanDescriptionsSkipsEmptySlots(t *testing.T) {
	s, store, out, d := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go d.Run(ctx)
	runDescriptionResponder(ctx, out, d, map[int]string{1: "Front Door", 3: "Garage", 7: "Patio"}, entity.ZoneCount)

	s.scanDescriptions(ctx, msg.DescribeZone, 1, entity.ZoneCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.ZoneCount {
			store.Zones[dm.Number].Name = dm.Name
		}
	})

	assert.Equal(t, "Front Door", store.Zones[1].Name)
	assert.Equal(t, "Garage", store.Zones[3].Name)
	assert.Equal(t, "Patio", store.Zones[7].Name)
	assert.Equal(t, "", store.Zones[2].Name)
}

func TestScanDescriptionsTerminatesOnTimeout(t *testing.T) {
	s, _, _, d := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	calls := 0
	s.scanDescriptions(ctx, msg.DescribeUser, 1, 2, func(msg.DescriptionMsg) {
		calls++
	})
	assert.Equal(t, 0, calls, "with no replies at all the traversal should give up on the first timeout")
}

func TestRunReachesVersionAndSetsRunning(t *testing.T) {
	s, store, out, d := newHarness(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go d.Run(ctx)

	// Nothing answers bulk status requests or descriptions; every wait
	// times out quickly (50ms) and the scanner still walks every phase
	// through to Version.
	go out.Run(ctx, func(string) error { return nil })

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(4 * time.Second):
		t.Fatal("scan never completed")
	}
	assert.Equal(t, entity.Running, store.Runtime)
	assert.Equal(t, Idle, s.Phase())
}
