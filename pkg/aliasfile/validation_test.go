// SPDX-License-Identifier: MPL-2.0

package aliasfile

import (
	"errors"
	"reflect"
	"testing"
)

func TestRequireNonBlankNulFree(t *testing.T) {
	t.Parallel()

	got, err := RequireNonBlankNulFree("f", "  value  ")
	if err != nil {
		t.Fatalf("RequireNonBlankNulFree() error = %v", err)
	}
	if got != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}

	if _, err := RequireNonBlankNulFree("f", "   "); !isViolation(err, ViolationBlank) {
		t.Errorf("blank value: got %v, want ViolationBlank", err)
	}
	if _, err := RequireNonBlankNulFree("f", "bad\x00value"); !isViolation(err, ViolationNulByte) {
		t.Errorf("nul value: got %v, want ViolationNulByte", err)
	}
	// NUL hidden inside whitespace that trimming would drop still rejects.
	if _, err := RequireNonBlankNulFree("f", " \x00 "); !isViolation(err, ViolationNulByte) {
		t.Errorf("nul in whitespace: got %v, want ViolationNulByte", err)
	}
}

func TestValidateMapKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		want string
		viol Violation
	}{
		{name: "typical key", key: "CHOPPER_KEY", want: "CHOPPER_KEY"},
		{name: "trims surrounding whitespace", key: "  PADDED  ", want: "PADDED"},
		{name: "underscore prefix", key: "_chopper42", want: "_chopper42"},
		{name: "blank", key: "   ", viol: ViolationBlank},
		{name: "equals sign", key: "BAD=KEY", viol: ViolationContainsEquals},
		{name: "nul byte", key: "BAD\x00KEY", viol: ViolationNulByte},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateMapKey("env", tt.key)
			if tt.viol != 0 {
				if !isViolation(err, tt.viol) {
					t.Fatalf("ValidateMapKey(%q) error = %v, want violation %d", tt.key, err, tt.viol)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateMapKey(%q) error = %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("ValidateMapKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestValidateValue_AcceptsEverythingButNul(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "emoji🚀", " spaced value ", "--flag=value", "../relative/path", "semi;colon&and", "$DOLLAR", `windows\path`} {
		if err := ValidateValue("args", v); err != nil {
			t.Errorf("ValidateValue(%q) error = %v, want nil", v, err)
		}
	}
	if err := ValidateValue("args", "bad\x00arg"); !isViolation(err, ViolationNulByte) {
		t.Errorf("ValidateValue(nul) = %v, want ViolationNulByte", err)
	}
}

func TestDedupeFirstSeen(t *testing.T) {
	t.Parallel()

	got := DedupeFirstSeen([]string{" B ", "A", "   ", "B", "A", "C"})
	want := []string{"B", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DedupeFirstSeen() = %v, want %v", got, want)
	}
}

func TestNormalizeRemoveKeys(t *testing.T) {
	t.Parallel()

	got, err := NormalizeRemoveKeys("env_remove", []string{" PATH ", "HOME", "", "PATH"})
	if err != nil {
		t.Fatalf("NormalizeRemoveKeys() error = %v", err)
	}
	want := []string{"PATH", "HOME"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeRemoveKeys() = %v, want %v", got, want)
	}

	if _, err := NormalizeRemoveKeys("env_remove", []string{"BAD=KEY"}); !isViolation(err, ViolationContainsEquals) {
		t.Errorf("equals entry: got %v, want ViolationContainsEquals", err)
	}
	if _, err := NormalizeRemoveKeys("env_remove", []string{"BAD\x00"}); !isViolation(err, ViolationNulByte) {
		t.Errorf("nul entry: got %v, want ViolationNulByte", err)
	}
}

func TestNormalizeEnvMap(t *testing.T) {
	t.Parallel()

	got, err := NormalizeEnvMap("env", map[string]string{" KEY ": "value", "OTHER": ""})
	if err != nil {
		t.Fatalf("NormalizeEnvMap() error = %v", err)
	}
	if got["KEY"] != "value" || got["OTHER"] != "" {
		t.Errorf("NormalizeEnvMap() = %v", got)
	}

	if _, err := NormalizeEnvMap("env", map[string]string{"A=B": "v"}); !isViolation(err, ViolationContainsEquals) {
		t.Errorf("equals key: got %v, want ViolationContainsEquals", err)
	}
	if _, err := NormalizeEnvMap("env", map[string]string{"K": "bad\x00"}); !isViolation(err, ViolationNulByte) {
		t.Errorf("nul value: got %v, want ViolationNulByte", err)
	}
	if _, err := NormalizeEnvMap("env", map[string]string{"  ": "v"}); !isViolation(err, ViolationBlank) {
		t.Errorf("blank key: got %v, want ViolationBlank", err)
	}
	// "KEY" and " KEY " collide after trimming.
	if _, err := NormalizeEnvMap("env", map[string]string{"KEY": "1", " KEY ": "2"}); !isViolation(err, ViolationDuplicateKey) {
		t.Errorf("colliding keys: got %v, want ViolationDuplicateKey", err)
	}
}

func isViolation(err error, v Violation) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Violation == v
}
