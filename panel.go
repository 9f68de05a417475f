// Package pyelk is the public façade (§4.8): it wires the transport,
// dispatcher, outbound queue and scanner together, exposes the
// configured entity masks, the per-entity command surface, callback
// registration, and fast-load snapshot persistence. Grounded on
// part5.go's top-level error/response types and monitor.go/delegate.go's
// listener registration pattern, adapted from the IEC-104 command/
// monitor split to the Elk command/state split this panel actually has.
package pyelk

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BioSehnsucht/pyelk/dispatch"
	"github.com/BioSehnsucht/pyelk/entity"
	"github.com/BioSehnsucht/pyelk/frame"
	"github.com/BioSehnsucht/pyelk/msg"
	"github.com/BioSehnsucht/pyelk/outbound"
	"github.com/BioSehnsucht/pyelk/scan"
	"github.com/BioSehnsucht/pyelk/transport"
)

// Panel is a live connection to an Elk M1 panel: the assembled transport,
// dispatcher, outbound queue, scanner and entity store, plus the masks
// that decide which entities the command surface and scanner touch
// (§4.8).
type Panel struct {
	cfg    Config
	logger *zap.Logger

	store *entity.Store
	out   *outbound.Queue
	disp  *dispatch.Dispatcher
	scan  *scan.Scanner
	tr    *transport.Transport

	masks entityMasks

	onDefault entity.Callback

	cancel context.CancelFunc
	group  *errgroup.Group
}

type entityMasks struct {
	zone, output, area, keypad, thermostat, user, x10, task, counter, setting mask
}

// Open validates cfg, dials the transport, and starts the reader,
// writer and scanner tasks (§5). onDefault, if non-nil, is the promoted
// handler for entities with no listener registered yet (§4.5).
func Open(ctx context.Context, cfg Config, logger *zap.Logger, onDefault entity.Callback) (*Panel, error) {
	cfg.setDefaults()
	if cfg.Host == "" {
		return nil, configErrorf("host is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	masks, err := buildMasks(cfg)
	if err != nil {
		return nil, err
	}

	store := entity.NewStore()
	if cfg.FastLoad {
		if data, err := os.ReadFile(cfg.FastLoadFile); err == nil {
			if err := store.LoadSnapshot(data); err != nil {
				logger.Warn("pyelk: snapshot load failed, scanning from scratch", zap.Error(err))
			}
		}
	}

	out := outbound.New(cfg.RateLimit, logger)

	p := &Panel{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		out:       out,
		masks:     masks,
		onDefault: onDefault,
	}

	disp := dispatch.New(store, out, logger, p.triggerRescan, onDefault)
	p.disp = disp
	p.scan = scan.New(store, out, disp, logger)

	tr, err := transport.Dial(transport.Config{Host: cfg.Host, Logger: logger}, func(line string) {
		disp.Push(line, time.Now())
	})
	if err != nil {
		return nil, errors.Wrap(err, "pyelk: open")
	}
	p.tr = tr

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	group, gctx := errgroup.WithContext(runCtx)
	p.group = group

	group.Go(func() error {
		disp.Run(gctx)
		return nil
	})
	group.Go(func() error {
		out.Run(gctx, tr.PushLine)
		return nil
	})
	group.Go(func() error {
		p.scan.Run(gctx)
		return nil
	})

	return p, nil
}

func buildMasks(cfg Config) (entityMasks, error) {
	var m entityMasks
	var err error
	if m.zone, err = buildMask(cfg.Zone, entity.ZoneCount); err != nil {
		return m, err
	}
	if m.output, err = buildMask(cfg.Output, entity.OutputCount); err != nil {
		return m, err
	}
	if m.area, err = buildMask(cfg.Area, entity.AreaCount); err != nil {
		return m, err
	}
	if m.keypad, err = buildMask(cfg.Keypad, entity.KeypadCount); err != nil {
		return m, err
	}
	if m.thermostat, err = buildMask(cfg.Thermostat, entity.ThermostatCount); err != nil {
		return m, err
	}
	if m.user, err = buildMask(cfg.User, entity.UserCount); err != nil {
		return m, err
	}
	if m.x10, err = buildX10Mask(cfg.X10); err != nil {
		return m, err
	}
	if m.task, err = buildMask(cfg.Task, entity.TaskCount); err != nil {
		return m, err
	}
	if m.counter, err = buildMask(cfg.Counter, entity.CounterCount); err != nil {
		return m, err
	}
	if m.setting, err = buildMask(cfg.Setting, entity.CustomSettingCount); err != nil {
		return m, err
	}
	return m, nil
}

// triggerRescan restarts the scanner from Idle on an IE (installer-mode
// exit) frame (§4.4, §4.7). It runs on the dispatcher goroutine, so the
// scan itself is handed off to a fresh goroutine to avoid blocking
// dispatch while it waits on replies.
func (p *Panel) triggerRescan() {
	if p.group == nil {
		return
	}
	p.group.Go(func() error {
		p.scan.Run(context.Background())
		return nil
	})
}

// Store exposes the in-memory entity mirror for read access and
// callback registration (§4.5).
func (p *Panel) Store() *entity.Store {
	return p.store
}

// EventLog exposes the bounded recent-events ring buffer (last 50
// dispatched entity-change notifications) for diagnostics, read-only off
// the façade.
func (p *Panel) EventLog() *entity.EventLog {
	return p.disp.EventLog()
}

// Close flushes the outbound queue, persists a fast-load snapshot if
// enabled, cancels the tasks Open started and releases the transport (§5
// "Shutdown ... flushes the outbound queue without sending"). A rescan
// started by triggerRescan runs under context.Background, so it is not
// cancelled; Close waits for it to finish.
func (p *Panel) Close() error {
	p.out.Flush()
	p.store.Runtime = entity.Disconnected

	if p.cfg.FastLoad {
		if data, err := p.store.MarshalSnapshot(); err != nil {
			p.logger.Warn("pyelk: snapshot marshal failed", zap.Error(err))
		} else if err := os.WriteFile(p.cfg.FastLoadFile, data, 0o644); err != nil {
			p.logger.Warn("pyelk: snapshot write failed", zap.Error(err))
		}
	}

	if p.cancel != nil {
		p.cancel()
	}
	if p.group != nil {
		p.group.Wait()
	}
	return p.tr.Close()
}

// push builds and enqueues a single outbound command frame.
func (p *Panel) push(kind msg.Kind, payload string, expect msg.Kind) {
	line, err := frame.Encode(string(kind), []byte(payload))
	if err != nil {
		p.logger.Debug("pyelk: encode failed", zap.Error(err), zap.String("kind", string(kind)))
		return
	}
	p.out.Push(outbound.Entry{
		Frame:      line,
		Expect:     string(expect),
		Retries:    2,
		RetryDelay: 2 * time.Second,
	})
}
