package modern

import "testing"

func TestEncodePasswordKnownVectors(t *testing.T) {
	tests := []struct {
		password string
		captcha  string
		want     string
	}{
		{
			password: "secret",
			captcha:  "4821",
			want:     "dbee23ea0b8b0d7d0126357cbbeecc20bbedc972e6636cdec38ea514274c0c8b8c12647623c8e37b23b551e791a55c8a5e1f0221c32243cc5956e54edf38efec",
		},
		{
			password: "hunter2",
			captcha:  "0000",
			want:     "e25f70058c8b9fb48fcd2c977c1409440443e0547dc05d89f5b6a9795b183c5f2173eb0197b07242990601c301de177b279ad4ee4650955daaf5b8785ee3132f",
		},
	}

	for _, tt := range tests {
		got := EncodePassword(tt.password, tt.captcha)
		if got != tt.want {
			t.Errorf("EncodePassword(%q, %q) = %s, want %s", tt.password, tt.captcha, got, tt.want)
		}
	}
}

func TestEncodePasswordDeterministic(t *testing.T) {
	first := EncodePassword("secret", "4821")
	second := EncodePassword("secret", "4821")
	if first != second {
		t.Fatalf("same inputs produced different digests: %s vs %s", first, second)
	}
	if len(first) != 128 {
		t.Fatalf("digest length = %d, want 128 hex chars", len(first))
	}
}

func TestEncodePasswordSensitiveToEveryInput(t *testing.T) {
	base := EncodePassword("secret", "4821")

	if got := EncodePassword("secret", "4822"); got == base {
		t.Error("changing one captcha digit did not change the digest")
	}
	if got := EncodePassword("Secret", "4821"); got == base {
		t.Error("changing password case did not change the digest")
	}
	if got := EncodePassword("secret ", "4821"); got == base {
		t.Error("trailing whitespace in password did not change the digest")
	}
}
