package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialSocketRoundTrip(t *testing.T) {
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

	received := make(chan string, 4)
	tr, err := Dial(Config{Host: "socket://" + ln.Addr().String()}, func(line string) {
		received <- line
	})
	require.NoError(t, err)
	defer tr.Close()

	var conn net.Conn
	select {
	case conn = <-accepted:
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted")
	}
	defer conn.Close()

	_, err = conn.Write([]byte("0AXK0000\r\n"))
	require.NoError(t, err)

	select {
	case line := <-received:
		assert.Equal(t, "0AXK0000", line)
	case <-time.After(2 * time.Second):
		t.Fatal("line never delivered")
	}

	require.NoError(t, tr.PushLine("0AXK0000"))
	buf := make([]byte, 32)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "0AXK0000\r\n", string(buf[:n]))
}

func TestAliveFalseAfterClose(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go ln.Accept()

	tr, err := Dial(Config{Host: "socket://" + ln.Addr().String()}, func(string) {})
	require.NoError(t, err)
	assert.True(t, tr.Alive())
	require.NoError(t, tr.Close())
	assert.False(t, tr.Alive())
}

func TestPushLineRejectsWhenClosed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go ln.Accept()

	tr, err := Dial(Config{Host: "socket://" + ln.Addr().String()}, func(string) {})
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	err = tr.PushLine("x")
	assert.ErrorIs(t, err, ErrNotOpen)
}
