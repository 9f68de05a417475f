package pyelk

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BioSehnsucht/pyelk/entity"
)

func TestOpenRejectsMissingHost(t *testing.T) {
	_, err := Open(context.Background(), Config{}, nil, nil)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestOpenRejectsUnparseableMask(t *testing.T) {
	_, err := Open(context.Background(), Config{Host: "socket://127.0.0.1:1", Zone: EntityMask{Include: []string{"nope"}}}, nil, nil)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestOpenDialsAndArmCommandReachesWire(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	p, err := Open(context.Background(), Config{
		Host:     "socket://" + ln.Addr().String(),
		FastLoad: false,
	}, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	var conn net.Conn
	select {
	case conn = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("panel never dialed the listener")
	}
	defer conn.Close()

	require.NoError(t, p.Arm(1, 1, "1234"))

	// The scanner is running concurrently and sends its own requests
	// over the same connection, so read until the arm command's user
	// code shows up rather than assuming it's first on the wire.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var seen []byte
	buf := make([]byte, 256)
	for !strings.Contains(string(seen), "1234") {
		n, err := conn.Read(buf)
		require.NoError(t, err)
		seen = append(seen, buf[:n]...)
	}
}

func TestPanelStoreExposesEntities(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go ln.Accept()

	p, err := Open(context.Background(), Config{Host: "socket://" + ln.Addr().String(), FastLoad: false}, nil, nil)
	require.NoError(t, err)
	defer p.Close()

	assert.NotNil(t, p.Store())
	assert.Len(t, p.Store().Zones, entity.ZoneCount+1)
}
