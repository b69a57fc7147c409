package main

import (
	"bytes"
	"testing"
)

func TestBuildExecutionRejectsEmptyArgs(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error for an empty positional argument list")
	}
	if out.Len() == 0 {
		t.Fatal("expected usage to be printed for an empty positional argument list")
	}
}
