// SPDX-License-Identifier: MPL-2.0

package types

import "testing"

func TestExitCodeClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ExitCode
		want ExitCode
	}{
		{0, 0},
		{7, 7},
		{255, 255},
		{256, 0},
		{257, 1},
		{-1, 255},
	}

	for _, tt := range tests {
		if got := tt.code.Clamp(); got != tt.want {
			t.Errorf("ExitCode(%d).Clamp() = %d, want %d", tt.code, got, tt.want)
		}
		if got := tt.code.Clamp(); got < 0 || got > 255 {
			t.Errorf("ExitCode(%d).Clamp() = %d, outside 0-255", tt.code, got)
		}
	}
}

func TestExitCodeIsSuccessAndString(t *testing.T) {
	t.Parallel()

	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false, want true")
	}
	if ExitRuntimeError.IsSuccess() {
		t.Error("ExitRuntimeError.IsSuccess() = true, want false")
	}
	if got := ExitFileNotFound.String(); got != "4" {
		t.Errorf("ExitFileNotFound.String() = %q, want %q", got, "4")
	}
}
