package domain

import "testing"

func TestReturnCanTransition(t *testing.T) {
	var r ReturnRequest

	allowed := [][2]string{
		{ReturnPending, ReturnApproved},
		{ReturnPending, ReturnRejected},
		{ReturnApproved, ReturnItemReceived},
		{ReturnItemReceived, ReturnRefunded},
	}
	for _, tr := range allowed {
		if !r.CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]string{
		{ReturnPending, ReturnItemReceived},
		{ReturnPending, ReturnRefunded},
		{ReturnApproved, ReturnRejected},
		{ReturnRejected, ReturnApproved},
		{ReturnRefunded, ReturnPending},
		{ReturnItemReceived, ReturnApproved},
	}
	for _, tr := range denied {
		if r.CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s to be denied", tr[0], tr[1])
		}
	}
}
