// Package scan implements the staged entity scanner (§4.7): a cyclic
// finite state machine that walks every entity class at connect time
// and on installer-mode exit, pulling bulk status/definition reports and
// then per-entity descriptions via the panel's skip-empty traversal.
// Grounded on pascaldekloe/part5/session.(*Transport) connect sequence
// (COTP/APCI startup handshake as a fixed state progression) but built
// fresh: nothing in the teacher enumerates a remote catalogue the way
// this panel's description requests do.
package scan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BioSehnsucht/pyelk/dispatch"
	"github.com/BioSehnsucht/pyelk/entity"
	"github.com/BioSehnsucht/pyelk/frame"
	"github.com/BioSehnsucht/pyelk/msg"
	"github.com/BioSehnsucht/pyelk/outbound"
)

// Phase is one state of the scanner's cyclic FSM (§4.7).
type Phase int

const (
	Idle Phase = iota
	Start
	Zones
	Outputs
	Areas
	Keypads
	Tasks
	Thermostats
	X10
	Users
	Counters
	Settings
	Version
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Start:
		return "start"
	case Zones:
		return "zones"
	case Outputs:
		return "outputs"
	case Areas:
		return "areas"
	case Keypads:
		return "keypads"
	case Tasks:
		return "tasks"
	case Thermostats:
		return "thermostats"
	case X10:
		return "x10"
	case Users:
		return "users"
	case Counters:
		return "counters"
	case Settings:
		return "settings"
	case Version:
		return "version"
	default:
		return "unknown"
	}
}

// Default timeouts for the scanner's explicit waits (§4.7): 30s for ZS,
// 10s for everything else the panel might take a while to answer.
// Exported so a caller (or a test) can shorten them.
const (
	DefaultZoneStatusTimeout     = 30 * time.Second
	DefaultZoneDefinitionTimeout = 10 * time.Second
	DefaultDescriptionTimeout    = 10 * time.Second
)

// Scanner drives the staged enumeration described in §4.7, pushing
// requests through an outbound queue and consuming the matching replies
// via the dispatcher's synchronous Wait.
type Scanner struct {
	store  *entity.Store
	out    *outbound.Queue
	disp   *dispatch.Dispatcher
	logger *zap.Logger

	phase Phase

	ZoneStatusTimeout     time.Duration
	ZoneDefinitionTimeout time.Duration
	DescriptionTimeout    time.Duration
}

// New returns a Scanner wired to store, out and disp, with the default
// timeouts of §4.7.
func New(store *entity.Store, out *outbound.Queue, disp *dispatch.Dispatcher, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		store:                 store,
		out:                   out,
		disp:                  disp,
		logger:                logger,
		phase:                 Idle,
		ZoneStatusTimeout:     DefaultZoneStatusTimeout,
		ZoneDefinitionTimeout: DefaultZoneDefinitionTimeout,
		DescriptionTimeout:    DefaultDescriptionTimeout,
	}
}

// Phase reports the scanner's current state.
func (s *Scanner) Phase() Phase {
	return s.phase
}

// Run executes one full cycle Start -> ... -> Version, then returns the
// runtime to Running via store.Runtime (§4.7: "After Version the
// scanner returns to Idle and the runtime state becomes Running").
func (s *Scanner) Run(ctx context.Context) {
	s.store.Runtime = entity.Connecting

	stages := []struct {
		phase Phase
		fn    func(context.Context)
	}{
		{Start, func(context.Context) {}},
		{Zones, s.scanZones},
		{Outputs, s.scanOutputs},
		{Areas, s.scanAreas},
		{Keypads, s.scanKeypads},
		{Tasks, s.scanTasks},
		{Thermostats, s.scanThermostats},
		{X10, s.scanX10},
		{Users, s.scanUsers},
		{Counters, s.scanCounters},
		{Settings, s.scanSettings},
		{Version, s.scanVersion},
	}

	for _, st := range stages {
		if ctx.Err() != nil {
			return
		}
		s.phase = st.phase
		s.logger.Debug("scan: entering phase", zap.String("phase", st.phase.String()))
		st.fn(ctx)
	}

	s.store.RebuildAreaMembers()
	s.phase = Idle
	s.store.Runtime = entity.Running
}

// send pushes a request frame through the outbound queue. expect, when
// non-empty, lets the dispatcher's retry-match cancel it once the reply
// arrives (§4.6); it does not by itself make send synchronous.
func (s *Scanner) send(kind msg.Kind, payload string, expect msg.Kind) {
	line, err := frame.Encode(string(kind), []byte(payload))
	if err != nil {
		s.logger.Debug("scan: encode failed", zap.Error(err), zap.String("kind", string(kind)))
		return
	}
	s.out.Push(outbound.Entry{Frame: line, Expect: string(expect)})
}

// request sends kind/payload and blocks for its reply via the
// dispatcher, per §4.7's explicit synchronous waits. A timeout is
// logged and treated as non-fatal (§7 ProtocolTimeout: "log, continue
// to next scanner state").
func (s *Scanner) request(ctx context.Context, kind msg.Kind, payload string, reply msg.Kind, timeout time.Duration) (frame.Frame, bool) {
	s.send(kind, payload, reply)
	f, err := s.disp.Wait(ctx, reply, timeout)
	if err != nil {
		s.logger.Debug("scan: timed out waiting for reply", zap.String("reply", string(reply)), zap.Error(err))
		return frame.Frame{}, false
	}
	return f, true
}

func (s *Scanner) scanZones(ctx context.Context) {
	s.request(ctx, msg.ZoneStatusRequest, "", msg.ZoneStatus, s.ZoneStatusTimeout)
	s.request(ctx, msg.ZoneDefinitionRequest, "", msg.ZoneDefinition, s.ZoneDefinitionTimeout)
	s.send(msg.ZonePartitionRequest, "", msg.ZonePartition)
	s.scanDescriptions(ctx, msg.DescribeZone, 1, entity.ZoneCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.ZoneCount {
			s.store.Zones[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanOutputs(ctx context.Context) {
	s.send(msg.OutputStatusRequest, "", msg.OutputStatus)
	s.scanDescriptions(ctx, msg.DescribeOutput, 1, entity.OutputCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.OutputCount {
			s.store.Outputs[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanAreas(ctx context.Context) {
	s.send(msg.ArmingStatusRequest, "", msg.ArmingStatus)
	s.send(msg.AlarmByZoneRequest, "", msg.AlarmByZone)
	s.scanDescriptions(ctx, msg.DescribeArea, 1, entity.AreaCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.AreaCount {
			s.store.Areas[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanKeypads(ctx context.Context) {
	s.send(msg.KeypadAreaRequest, "", msg.KeypadAreaReply)
	s.send(msg.KeypadStatusRequest, "", msg.KeypadStatus)
	s.scanDescriptions(ctx, msg.DescribeKeypad, 1, entity.KeypadCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.KeypadCount {
			s.store.Keypads[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanTasks(ctx context.Context) {
	s.scanDescriptions(ctx, msg.DescribeTask, 1, entity.TaskCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.TaskCount {
			s.store.Tasks[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanThermostats(ctx context.Context) {
	s.send(msg.ThermostatReqKind, msg.EncodeThermostatRequest(0), msg.ThermostatData)
	s.scanDescriptions(ctx, msg.DescribeThermostat, 1, entity.ThermostatCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.ThermostatCount {
			s.store.Thermostats[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanX10(ctx context.Context) {
	s.send(msg.PLCStatusRequest, "", msg.PLCStatus)
	s.scanDescriptions(ctx, msg.DescribeLight, 0, entity.X10DeviceCount-1, func(dm msg.DescriptionMsg) {
		if dm.Number >= 0 && dm.Number < entity.X10DeviceCount {
			s.store.X10[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanUsers(ctx context.Context) {
	s.scanDescriptions(ctx, msg.DescribeUser, 1, entity.UserCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.UserCount && !entity.IsReservedUser(dm.Number) {
			s.store.Users[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanCounters(ctx context.Context) {
	s.send(msg.CounterReadKind, msg.EncodeCounterRead(0), msg.CounterReply)
	s.scanDescriptions(ctx, msg.DescribeCounter, 1, entity.CounterCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.CounterCount {
			s.store.Counters[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanSettings(ctx context.Context) {
	s.send(msg.SettingReadKind, msg.EncodeSettingRead(0), msg.ValueRead)
	s.scanDescriptions(ctx, msg.DescribeCustomSetting, 1, entity.CustomSettingCount, func(dm msg.DescriptionMsg) {
		if dm.Number >= 1 && dm.Number <= entity.CustomSettingCount {
			s.store.Settings[dm.Number].Name = dm.Name
		}
	})
}

func (s *Scanner) scanVersion(ctx context.Context) {
	s.request(ctx, msg.VersionRequest, "", msg.VersionReply, s.DescriptionTimeout)
}

// scanDescriptions walks the skip-empty description traversal (§4.7) for
// one entity class: request index n, apply whatever index the panel
// actually answers with, then continue from there. The panel returns
// the next valid index when the requested slot is empty, so a sparse
// catalogue costs one request per populated slot rather than one per
// slot in range.
func (s *Scanner) scanDescriptions(ctx context.Context, t msg.DescriptionType, lower, upper int, apply func(msg.DescriptionMsg)) {
	n := lower
	for n <= upper {
		if ctx.Err() != nil {
			return
		}
		f, ok := s.request(ctx, msg.DescriptionRequest, msg.EncodeDescriptionRequest(t, n), msg.DescriptionReply, s.DescriptionTimeout)
		if !ok {
			return
		}
		dm, err := msg.DecodeDescription(string(f.Payload))
		if err != nil {
			s.logger.Debug("scan: malformed description reply", zap.Error(err))
			return
		}
		if dm.Number < n {
			return
		}
		apply(dm)
		n = dm.Number + 1
	}
}
