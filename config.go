package pyelk

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/BioSehnsucht/pyelk/msg"
)

// ConfigError is the only error kind returned to the caller rather than
// recovered locally (§7): an unparseable range token or a bad host.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{msg: "pyelk: " + errors.Errorf(format, args...).Error()}
}

// EntityMask names one `{entity}.{include,exclude}` config pair (§4.8).
type EntityMask struct {
	Include []string
	Exclude []string
}

// Config is the façade's configuration object (§4.8). Host is the only
// required field; everything else has a documented default.
type Config struct {
	Host string

	// RateLimit is the outbound frame rate, frames/sec (default 10).
	RateLimit float64

	// FastLoad enables JSON snapshot restore at start and the snapshot
	// write on Close. It is not defaulted: the zero value (false) leaves
	// both off.
	FastLoad bool

	// FastLoadFile is the snapshot path (default "pyelk_snapshot.json").
	FastLoadFile string

	Zone       EntityMask
	Output     EntityMask
	Area       EntityMask
	Keypad     EntityMask
	Thermostat EntityMask
	User       EntityMask
	X10        EntityMask
	Task       EntityMask
	Counter    EntityMask
	Setting    EntityMask
}

func (c *Config) setDefaults() {
	if c.RateLimit <= 0 {
		c.RateLimit = 10
	}
	if c.FastLoadFile == "" {
		c.FastLoadFile = "pyelk_snapshot.json"
	}
}

// mask is a resolved 1-based inclusion set covering 1..size, after
// include/exclude have both been applied (§4.8: "inclusion wins over
// default-all; exclusion wins over inclusion").
type mask struct {
	included map[int]bool
}

func (m mask) allows(n int) bool {
	return m.included[n]
}

// buildMask resolves an EntityMask over the decimal range 1..size. An
// empty Include list defaults to "all included".
func buildMask(em EntityMask, size int) (mask, error) {
	included := make(map[int]bool, size)
	if len(em.Include) == 0 {
		for n := 1; n <= size; n++ {
			included[n] = true
		}
	} else {
		for _, tok := range em.Include {
			lo, hi, err := parseDecimalRange(tok)
			if err != nil {
				return mask{}, err
			}
			for n := lo; n <= hi; n++ {
				if n >= 1 && n <= size {
					included[n] = true
				}
			}
		}
	}
	for _, tok := range em.Exclude {
		lo, hi, err := parseDecimalRange(tok)
		if err != nil {
			return mask{}, err
		}
		for n := lo; n <= hi; n++ {
			delete(included, n)
		}
	}
	return mask{included: included}, nil
}

// buildX10Mask is buildMask's X10 analogue: it resolves over the flat 0..255
// house/unit index space, accepting house codes ("C5") and house-code
// ranges ("A1-B4") in addition to plain decimal tokens (§4.8).
func buildX10Mask(em EntityMask) (mask, error) {
	included := make(map[int]bool, msg.X10DeviceCount)
	if len(em.Include) == 0 {
		for n := 0; n < msg.X10DeviceCount; n++ {
			included[n] = true
		}
	} else {
		for _, tok := range em.Include {
			lo, hi, err := parseX10Range(tok)
			if err != nil {
				return mask{}, err
			}
			for n := lo; n <= hi; n++ {
				included[n] = true
			}
		}
	}
	for _, tok := range em.Exclude {
		lo, hi, err := parseX10Range(tok)
		if err != nil {
			return mask{}, err
		}
		for n := lo; n <= hi; n++ {
			delete(included, n)
		}
	}
	return mask{included: included}, nil
}

// parseDecimalRange parses a plain decimal token "N" or "A-B" (§4.8
// range syntax).
func parseDecimalRange(tok string) (lo, hi int, err error) {
	tok = strings.TrimSpace(tok)
	if a, b, ok := strings.Cut(tok, "-"); ok {
		lo, err = strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return 0, 0, configErrorf("invalid range token %q: %v", tok, err)
		}
		hi, err = strconv.Atoi(strings.TrimSpace(b))
		if err != nil {
			return 0, 0, configErrorf("invalid range token %q: %v", tok, err)
		}
		return lo, hi, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, 0, configErrorf("invalid range token %q: %v", tok, err)
	}
	return n, n, nil
}

// parseX10Range parses an X10 token: a plain decimal index, a house
// code like "C5", or a house-code range like "A1-B4" (§4.8).
func parseX10Range(tok string) (lo, hi int, err error) {
	tok = strings.TrimSpace(tok)
	if a, b, ok := strings.Cut(tok, "-"); ok {
		loIdx, err := parseX10Code(a)
		if err != nil {
			return 0, 0, err
		}
		hiIdx, err := parseX10Code(b)
		if err != nil {
			return 0, 0, err
		}
		return loIdx, hiIdx, nil
	}
	if isX10Code(tok) {
		idx, err := parseX10Code(tok)
		return idx, idx, err
	}
	return parseDecimalRange(tok)
}

func isX10Code(tok string) bool {
	return len(tok) >= 2 && tok[0] >= 'A' && tok[0] <= 'P'
}

func parseX10Code(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if !isX10Code(tok) {
		return 0, configErrorf("invalid X10 code %q", tok)
	}
	unit, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, configErrorf("invalid X10 code %q: %v", tok, err)
	}
	idx, err := msg.HouseUnitToIndex(tok[0], unit)
	if err != nil {
		return 0, configErrorf("invalid X10 code %q: %v", tok, err)
	}
	return idx, nil
}
