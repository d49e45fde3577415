package errs

import (
	"errors"
	"testing"
)

func TestExternalServiceErrorTransient(t *testing.T) {
	cases := []struct {
		status int
		want   bool
	}{
		{0, true},
		{500, true},
		{503, true},
		{400, false},
		{404, false},
	}
	for _, c := range cases {
		e := NewExternalServiceError("finance-api", c.status, "boom", nil)
		if e.Transient != c.want {
			t.Errorf("status %d: transient = %v, want %v", c.status, e.Transient, c.want)
		}
	}
}

func TestDatabaseErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := error(NewDatabaseError("write", "failed to store cache entry", cause))
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) || dbErr.Operation != "write" {
		t.Fatalf("unexpected: %+v", dbErr)
	}
	if err.Error() != "failed to store cache entry: disk full" {
		t.Fatalf("message = %q", err.Error())
	}
}
