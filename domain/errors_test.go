package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsTransient(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want bool
	}{
		{KindRateLimited, true},
		{KindOverloaded, true},
		{KindUnauthorized, false},
		{KindInvalidInput, false},
		{KindTimeout, false},
		{KindRemoteFailed, false},
	}
	for _, tc := range cases {
		err := NewServiceError(tc.kind, "boom", nil)
		if got := IsTransient(err); got != tc.want {
			t.Errorf("IsTransient(%s) = %v, want %v", tc.kind, got, tc.want)
		}
	}

	if IsTransient(errors.New("plain error")) {
		t.Error("plain errors must be fatal")
	}
	if IsTransient(nil) {
		t.Error("nil must not be transient")
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := NewServiceError(KindUnauthorized, "Requested entity was not found", nil)
	wrapped := fmt.Errorf("checking status: %w", inner)
	if got := KindOf(wrapped); got != KindUnauthorized {
		t.Errorf("KindOf = %q, want unauthorized", got)
	}
	if got := KindOf(errors.New("opaque")); got != KindRemoteFailed {
		t.Errorf("KindOf(opaque) = %q, want remote_failed", got)
	}
}
