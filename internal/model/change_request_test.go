package model

import "testing"

func TestRequestStatus_IsTerminal(t *testing.T) {
	cases := map[RequestStatus]bool{
		StatusPending:   false,
		StatusApproved:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	}
	for status, want := range cases {
		if got := status.IsTerminal(); got != want {
			t.Fatalf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}
