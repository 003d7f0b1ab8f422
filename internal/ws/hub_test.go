package ws

/*

go test -run 'TestHub_' -v ./internal/ws -count=1

*/

import (
	"log/slog"
	"testing"
	"time"
)

func TestHub_Broadcast(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	c1 := &Client{Send: make(chan []byte, 1)}
	c2 := &Client{Send: make(chan []byte, 1)}
	h.Register(c1)
	h.Register(c2)

	msg := []byte(`{"action":"import","dataset":"suppliers"}`)
	h.Broadcast(msg)

	for _, c := range []*Client{c1, c2} {
		select {
		case got := <-c.Send:
			if string(got) != string(msg) {
				t.Fatalf("client %s got %q", c.ID, got)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("timeout waiting client %s", c.ID)
		}
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	h := NewHub(slog.Default())
	go h.Run()
	defer h.Stop()

	slow := &Client{Send: make(chan []byte)} // sem buffer e ninguém lendo
	ok := &Client{Send: make(chan []byte, 2)}
	h.Register(slow)
	h.Register(ok)

	h.Broadcast([]byte("a"))
	h.Broadcast([]byte("b"))

	// o cliente saudável continua recebendo
	for _, want := range []string{"a", "b"} {
		select {
		case got := <-ok.Send:
			if string(got) != want {
				t.Fatalf("got %q want %q", got, want)
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatalf("timeout waiting %q", want)
		}
	}

	// o canal do lento foi fechado pelo hub
	select {
	case _, open := <-slow.Send:
		if open {
			t.Fatalf("slow client should have been dropped")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("slow client channel not closed")
	}
}
