package password

import "testing"

func TestHashVerifyRoundTrip(t *testing.T) {
	encoded, err := Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !Verify("s3cret-pass", encoded) {
		t.Fatalf("expected digest to verify")
	}
	if Verify("wrong-pass", encoded) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := Hash("same-input")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct salts, got identical digests")
	}
}

func TestVerifyRejectsMalformedDigests(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=1$short",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=bad,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	}
	for _, encoded := range cases {
		if Verify("anything", encoded) {
			t.Fatalf("expected %q to be rejected", encoded)
		}
	}
}
