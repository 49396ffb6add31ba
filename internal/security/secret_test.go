package security

import (
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "single character alphabet", length: 8, alphabet: "X"},
		{name: "secret alphabet", length: 64, alphabet: SecretAlphabet},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				if err == nil {
					t.Fatalf("RandomString(%d, %q) expected error, got nil", test.length, test.alphabet)
				}
				return
			}
			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d, want %d", test.length, test.alphabet, len(got), test.length)
			}
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString(%d, %q) produced char %q outside alphabet", test.length, test.alphabet, char)
				}
			}
		})
	}
}

func TestNewSessionSecretIsFreshEachCall(t *testing.T) {
	first, err := NewSessionSecret()
	if err != nil {
		t.Fatalf("NewSessionSecret() returned error: %v", err)
	}
	second, err := NewSessionSecret()
	if err != nil {
		t.Fatalf("NewSessionSecret() returned error: %v", err)
	}

	if len(first) != SessionSecretLength {
		t.Fatalf("expected secret length %d, got %d", SessionSecretLength, len(first))
	}
	if first == second {
		t.Fatal("expected two secrets to differ")
	}
}
