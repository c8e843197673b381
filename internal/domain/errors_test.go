package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "ephemeris.init",
		Kind: KindNotFound,
		Path: "ephe/planets.yaml",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindNotFound {
		t.Fatalf("expected kind %s", KindNotFound)
	}
	if !strings.Contains(err.Error(), "path=ephe/planets.yaml") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := &OpError{
		Op:   "horizons.calc",
		Kind: KindOracle,
		Err:  ErrOracleUnavailable,
	}

	if !IsKind(err, KindOracle) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind mismatch for other kind")
	}
	if IsKind(errors.New("plain"), KindOracle) {
		t.Fatalf("expected plain errors not to match")
	}
}

func TestOpErrorNil(t *testing.T) {
	var err *OpError
	if err.Error() != "<nil>" {
		t.Fatalf("unexpected nil message %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}

func TestOpErrorBodyAndKindOf(t *testing.T) {
	err := fmtWrap(&OpError{
		Op:   "ephemeris.fetch",
		Kind: KindOracle,
		Body: "mars",
		Err:  errors.New("boom"),
	})

	if !strings.Contains(err.Error(), "(body=mars)") {
		t.Fatalf("expected body in message, got %q", err.Error())
	}
	if got := KindOf(err); got != KindOracle {
		t.Fatalf("KindOf = %q, want %q", got, KindOracle)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("KindOf(plain) = %q, want empty", got)
	}
}

func fmtWrap(err error) error { return fmt.Errorf("snapshot: %w", err) }
