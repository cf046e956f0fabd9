package security

import (
	"testing"
	"time"
)

func TestValidateURL_AllowsPublicURLs(t *testing.T) {
	g := NewSSRFGuard()

	tests := []string{
		"https://example.com/image.jpg",
		"http://images.example.org/photo.png",
		"https://93.184.216.34/pic.webp",
	}
	for _, rawURL := range tests {
		if err := g.ValidateURL(rawURL); err != nil {
			t.Errorf("ValidateURL(%q) がエラーを返した: %v", rawURL, err)
		}
	}
}

func TestValidateURL_BlocksPrivateIPs(t *testing.T) {
	g := NewSSRFGuard()

	tests := []struct {
		name   string
		rawURL string
	}{
		{"プライベートIP 10.x", "http://10.0.0.5/image.jpg"},
		{"プライベートIP 172.16.x", "http://172.16.0.1/image.jpg"},
		{"プライベートIP 192.168.x", "http://192.168.1.1/image.jpg"},
		{"ループバック", "http://127.0.0.1/image.jpg"},
		{"クラウドメタデータIP", "http://169.254.169.254/latest/meta-data/"},
		{"カレントネットワーク", "http://0.0.0.0/image.jpg"},
		{"IPv6ループバック", "http://[::1]/image.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.ValidateURL(tt.rawURL); err == nil {
				t.Errorf("ValidateURL(%q) はブロックされるべき", tt.rawURL)
			}
		})
	}
}

func TestValidateURL_BlocksLocalhost(t *testing.T) {
	g := NewSSRFGuard()

	if err := g.ValidateURL("http://localhost:8080/image.jpg"); err == nil {
		t.Error("localhostはブロックされるべき")
	}
	if err := g.ValidateURL("http://LOCALHOST/image.jpg"); err == nil {
		t.Error("大文字のLOCALHOSTもブロックされるべき")
	}
}

func TestValidateURL_BlocksDisallowedSchemes(t *testing.T) {
	g := NewSSRFGuard()

	tests := []string{
		"ftp://example.com/image.jpg",
		"file:///etc/passwd",
		"gopher://example.com/",
	}
	for _, rawURL := range tests {
		if err := g.ValidateURL(rawURL); err == nil {
			t.Errorf("ValidateURL(%q) はスキームで拒否されるべき", rawURL)
		}
	}
}

func TestValidateURL_EmptyAndInvalid(t *testing.T) {
	g := NewSSRFGuard()

	if err := g.ValidateURL(""); err == nil {
		t.Error("空URLは拒否されるべき")
	}
	if err := g.ValidateURL("https://"); err == nil {
		t.Error("ホストなしURLは拒否されるべき")
	}
}

func TestNewSafeClient_ReturnsConfiguredClient(t *testing.T) {
	g := NewSSRFGuard()

	client := g.NewSafeClient(5*time.Second, 1024)
	if client == nil {
		t.Fatal("NewSafeClient は nil を返してはならない")
	}
}
