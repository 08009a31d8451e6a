package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusForUnwrapsWrappedSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: product abc", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("outer: %w", fmt.Errorf("%w: bad vector", ErrInvalid)), http.StatusBadRequest},
		{fmt.Errorf("%w: invalid credentials", ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: role check", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: classifier predict", ErrUpstream), http.StatusBadGateway},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Errorf("StatusFor(%v): want=%d got=%d", c.err, c.want, got)
		}
	}
}

func TestExplicitErrorOverridesSentinelMapping(t *testing.T) {
	err := fmt.Errorf("wrap: %w", New(http.StatusTeapot, "teapot", ErrInvalid))
	if got := StatusFor(err); got != http.StatusTeapot {
		t.Errorf("StatusFor: want=%d got=%d", http.StatusTeapot, got)
	}
	if got := CodeFor(err); got != "teapot" {
		t.Errorf("CodeFor: want=teapot got=%s", got)
	}
}

func TestCodeFor(t *testing.T) {
	if got := CodeFor(fmt.Errorf("%w: gone", ErrNotFound)); got != "not_found" {
		t.Errorf("CodeFor: want=not_found got=%s", got)
	}
	if got := CodeFor(errors.New("mystery")); got != "internal" {
		t.Errorf("CodeFor: want=internal got=%s", got)
	}
}
