// Copyright 2025 The IMACS Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"testing"
	"time"
)

func TestPath_Child(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Path
		expected string
	}{
		{
			name:     "single segment",
			build:    func() *Path { return NewPath("codegen") },
			expected: "codegen",
		},
		{
			name:     "two segments",
			build:    func() *Path { return NewPath("codegen").Child("out_dir") },
			expected: "codegen.out_dir",
		},
		{
			name:     "two segments under completeness",
			build:    func() *Path { return NewPath("completeness").Child("max_full_predicates") },
			expected: "completeness.max_full_predicates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.build()
			if got := path.String(); got != tt.expected {
				t.Errorf("Path.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPath_ChildDoesNotMutateParent(t *testing.T) {
	parent := NewPath("codegen")
	child := parent.Child("out_dir")

	if parent.String() != "codegen" {
		t.Errorf("parent was mutated: got %q, want %q", parent.String(), "codegen")
	}
	if child.String() != "codegen.out_dir" {
		t.Errorf("child incorrect: got %q, want %q", child.String(), "codegen.out_dir")
	}
}

func TestPath_Index(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *Path
		expected string
	}{
		{
			name:     "index on child",
			build:    func() *Path { return NewPath("codegen").Child("targets").Index(0) },
			expected: "codegen.targets[0]",
		},
		{
			name:     "index then child",
			build:    func() *Path { return NewPath("codegen").Child("targets").Index(0).Child("name") },
			expected: "codegen.targets[0].name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.build()
			if got := path.String(); got != tt.expected {
				t.Errorf("Path.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPath_IndexDoesNotMutateParent(t *testing.T) {
	parent := NewPath("codegen").Child("targets")
	child := parent.Index(5)

	if parent.String() != "codegen.targets" {
		t.Errorf("parent was mutated: got %q, want %q", parent.String(), "codegen.targets")
	}
	if child.String() != "codegen.targets[5]" {
		t.Errorf("child incorrect: got %q, want %q", child.String(), "codegen.targets[5]")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errs     ValidationErrors
		expected string
	}{
		{
			name:     "single error",
			errs:     ValidationErrors{{Field: "codegen.out_dir", Message: "must not be empty"}},
			expected: "- codegen.out_dir: must not be empty",
		},
		{
			name: "multiple errors",
			errs: ValidationErrors{
				{Field: "codegen.out_dir", Message: "must not be empty"},
				{Field: "completeness.max_full_predicates", Message: "must be greater than 0"},
			},
			expected: "- codegen.out_dir: must not be empty\n- completeness.max_full_predicates: must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errs.Error(); got != tt.expected {
				t.Errorf("ValidationErrors.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationErrors_OrNil(t *testing.T) {
	t.Run("empty returns nil", func(t *testing.T) {
		var errs ValidationErrors
		if errs.OrNil() != nil {
			t.Error("OrNil() should return nil for empty ValidationErrors")
		}
	})

	t.Run("non-empty returns self", func(t *testing.T) {
		errs := ValidationErrors{{Field: "test", Message: "error"}}
		if errs.OrNil() == nil {
			t.Error("OrNil() should return non-nil for non-empty ValidationErrors")
		}
	})
}

func TestRequired(t *testing.T) {
	path := NewPath("codegen").Child("targets")

	err := Required(path)
	if err.Field != "codegen.targets" {
		t.Errorf("Field = %q, want %q", err.Field, "codegen.targets")
	}
	if err.Message != "is required" {
		t.Errorf("Message = %q, want %q", err.Message, "is required")
	}
}

func TestMustBeInRange(t *testing.T) {
	path := NewPath("completeness").Child("max_full_predicates")

	tests := []struct {
		name    string
		value   int
		min     int
		max     int
		wantErr bool
	}{
		{"below min", 0, 1, 1024, true},
		{"at min", 1, 1, 1024, false},
		{"in range", 64, 1, 1024, false},
		{"at max", 1024, 1, 1024, false},
		{"above max", 1025, 1, 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MustBeInRange(path, tt.value, tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("MustBeInRange() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMustBeInRange_Duration(t *testing.T) {
	path := NewPath("server").Child("timeout")

	t.Run("valid duration", func(t *testing.T) {
		err := MustBeInRange(path, 15*time.Second, 0, 5*time.Minute)
		if err != nil {
			t.Errorf("MustBeInRange() unexpected error: %v", err)
		}
	})

	t.Run("duration too large", func(t *testing.T) {
		err := MustBeInRange(path, 10*time.Minute, 0, 5*time.Minute)
		if err == nil {
			t.Fatal("MustBeInRange() expected error for duration above max")
		}
		if !strings.Contains(err.Message, "5m0s") {
			t.Errorf("error message should contain formatted duration, got: %s", err.Message)
		}
	})
}

func TestMustBeNonNegative(t *testing.T) {
	path := NewPath("timeout")

	t.Run("positive value", func(t *testing.T) {
		if err := MustBeNonNegative(path, 10); err != nil {
			t.Errorf("MustBeNonNegative() unexpected error: %v", err)
		}
	})

	t.Run("zero value", func(t *testing.T) {
		if err := MustBeNonNegative(path, 0); err != nil {
			t.Errorf("MustBeNonNegative() should allow zero: %v", err)
		}
	})

	t.Run("negative value", func(t *testing.T) {
		if err := MustBeNonNegative(path, -1); err == nil {
			t.Error("MustBeNonNegative() expected error for negative value")
		}
	})
}

func TestMustBeOneOf(t *testing.T) {
	path := NewPath("logging").Child("level")
	allowed := []string{"debug", "info", "warn", "error"}

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid value", "info", false},
		{"another valid", "debug", false},
		{"invalid value", "trace", true},
		{"empty value", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MustBeOneOf(path, tt.value, allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("MustBeOneOf() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("error message lists allowed values", func(t *testing.T) {
		err := MustBeOneOf(path, "invalid", allowed)
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Message, "debug, info, warn, error") {
			t.Errorf("error message should list allowed values, got: %s", err.Message)
		}
	})
}

func TestMustNotBeEmpty(t *testing.T) {
	path := NewPath("codegen").Child("out_dir")

	t.Run("non-empty", func(t *testing.T) {
		if err := MustNotBeEmpty(path, "generated"); err != nil {
			t.Errorf("MustNotBeEmpty() unexpected error: %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if err := MustNotBeEmpty(path, ""); err == nil {
			t.Error("MustNotBeEmpty() expected error for empty string")
		}
	})
}
