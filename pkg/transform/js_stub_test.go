//go:build !js_eval

package transform

import (
	"errors"
	"testing"
)

func TestJS_UnavailableWithoutTag(t *testing.T) {
	if JSAvailable() {
		t.Fatalf("js engine should be compiled out")
	}
	if _, err := Compile(EngineJS, "value"); !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
}
