package cmd

import (
	"io"
	"strings"
	"testing"
)

func runSet(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newSetCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestSetRejectsInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "non-numeric year", args: []string{"photo.jpg", "soon"}, want: "invalid year"},
		{name: "year out of range", args: []string{"photo.jpg", "1850"}, want: "year"},
		{name: "non-numeric month", args: []string{"photo.jpg", "2023", "dec"}, want: "invalid month"},
		{name: "explicit zero month", args: []string{"photo.jpg", "2023", "0"}, want: "invalid month"},
		{name: "month too large", args: []string{"photo.jpg", "2023", "13"}, want: "invalid month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runSet(t, tt.args...)
			if err == nil {
				t.Fatalf("Expected error for args %v", tt.args)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}
