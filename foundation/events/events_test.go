package events_test

import (
	"strconv"
	"testing"

	"github.com/ledgerlab/powchain/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_SendSubscribe(t *testing.T) {
	t.Log("Given the need to fan out events to subscribers.")
	{
		evts := events.New()

		ch1 := evts.Subscribe("one")
		ch2 := evts.Subscribe("two")

		if evts.Subscribe("one") != ch1 {
			t.Fatalf("\t%s\tShould return the same channel for the same id.", failed)
		}
		t.Logf("\t%s\tShould return the same channel for the same id.", success)

		evts.Send("state: block mined")

		for i, ch := range []<-chan string{ch1, ch2} {
			if got := <-ch; got != "state: block mined" {
				t.Fatalf("\t%s\tShould deliver to subscriber %d : got %q", failed, i, got)
			}
			t.Logf("\t%s\tShould deliver to subscriber %d.", success, i)
		}

		if err := evts.Unsubscribe("one"); err != nil {
			t.Fatalf("\t%s\tShould unsubscribe : %v", failed, err)
		}
		if _, open := <-ch1; open {
			t.Fatalf("\t%s\tShould close the channel on unsubscribe.", failed)
		}
		t.Logf("\t%s\tShould close the channel on unsubscribe.", success)

		if err := evts.Unsubscribe("one"); err == nil {
			t.Fatalf("\t%s\tShould fail to unsubscribe twice.", failed)
		}
		t.Logf("\t%s\tShould fail to unsubscribe twice.", success)

		evts.Shutdown()
		if evts.Subscribers() != 0 {
			t.Fatalf("\t%s\tShould remove every subscriber on shutdown.", failed)
		}
		if _, open := <-ch2; open {
			t.Fatalf("\t%s\tShould close channels on shutdown.", failed)
		}
		t.Logf("\t%s\tShould close channels on shutdown.", success)
	}
}

func Test_SlowSubscriber(t *testing.T) {
	t.Log("Given the need to never block on a slow subscriber.")
	{
		evts := events.New()
		defer evts.Shutdown()

		evts.Subscribe("slow")

		const sends = 150
		for i := 0; i < sends; i++ {
			evts.Send(strconv.Itoa(i))
		}

		if evts.Dropped() != sends-100 {
			t.Fatalf("\t%s\tShould drop what does not fit the buffer : got %d", failed, evts.Dropped())
		}
		t.Logf("\t%s\tShould drop what does not fit the buffer.", success)
	}
}
