package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerificationLink(t *testing.T) {
	link := VerificationLink("https://academy.example", "a+b/c")
	assert.Equal(t, "https://academy.example/verify-email?token=a%2Bb%2Fc", link)
}

func TestVerificationHTMLEscapesName(t *testing.T) {
	body := verificationHTML("<script>", "https://x/verify-email?token=t&x=1")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "token=t&amp;x=1")
}

func TestNopSender(t *testing.T) {
	var s EmailSender = NopSender{}
	assert.NoError(t, s.SendVerification(context.Background(), "a@b.co", "A", "tok"))
}
