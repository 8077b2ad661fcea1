package test

import (
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Expect compares two values and fails the test if they are different.
func Expect[T any](
	t FailerT,
	failMessage string,
	got, want T,
	options ...cmp.Option,
) {
	t.Helper()

	options = append(
		options,
		cmpopts.EquateEmpty(),
		cmpopts.EquateErrors(),
	)

	if diff := cmp.Diff(want, got, options...); diff != "" {
		t.Log(failMessage)
		t.Fatal(diff)
	}
}

// ExpectChannelToReceive waits until a value is received from a channel and
// then compares it to the expected value.
func ExpectChannelToReceive[T any](
	t FailerT,
	ch <-chan T,
	want T,
	options ...cmp.Option,
) {
	t.Helper()

	select {
	case <-time.After(DefaultTimeout):
		t.Fatalf("no value received on channel within %s", DefaultTimeout)
	case got, ok := <-ch:
		if ok {
			Expect(
				t,
				"channel received an unexpected value",
				got,
				want,
				options...,
			)
		} else {
			t.Error("channel closed while expecting to receive a value")
		}
	}
}

// ExpectChannelToClose waits until a channel is closed.
func ExpectChannelToClose[T any](
	t FailerT,
	ch <-chan T,
) {
	t.Helper()

	select {
	case <-time.After(DefaultTimeout):
		t.Fatalf("channel was not closed within %s", DefaultTimeout)
	case got, ok := <-ch:
		if ok {
			t.Errorf("channel received a value (%v) while expecting channel to be closed", got)
		}
	}
}

// ExpectChannelToBlockForDuration expects reading from the channel to block
// until the given duration elapses.
func ExpectChannelToBlockForDuration[T any](
	t FailerT,
	d time.Duration,
	ch <-chan T,
) {
	t.Helper()

	select {
	case <-time.After(d):
		// success! duration elapsed without receiving a value
	case got, ok := <-ch:
		if ok {
			t.Errorf("channel received a value (%v) while expecting channel to block", got)
		} else {
			t.Error("channel closed while expecting channel to block")
		}
	}
}

// ExpectChannelWouldBlock expects reading from the channel would block.
func ExpectChannelWouldBlock[T any](
	t FailerT,
	ch <-chan T,
) {
	t.Helper()

	select {
	default:
		// success! there is no value available on the channel
	case got, ok := <-ch:
		if ok {
			t.Errorf("channel received a value (%v) while expecting channel to block", got)
		} else {
			t.Error("channel closed while expecting channel to block")
		}
	}
}
