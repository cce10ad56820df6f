package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequireHTTP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rawURL  string
		wantErr bool
	}{
		{name: "https accepted", rawURL: "https://example.com/page"},
		{name: "http accepted", rawURL: "http://example.com"},
		{name: "ftp rejected", rawURL: "ftp://example.com/file", wantErr: true},
		{name: "missing scheme rejected", rawURL: "example.com/page", wantErr: true},
		{name: "scheme without host rejected", rawURL: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := RequireHTTP(tt.rawURL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{name: "lowercases scheme and host", rawURL: "HTTPS://Example.COM/Path", want: "https://example.com/Path"},
		{name: "strips default https port", rawURL: "https://example.com:443/a", want: "https://example.com/a"},
		{name: "strips default http port", rawURL: "http://example.com:80/a", want: "http://example.com/a"},
		{name: "drops fragment", rawURL: "https://example.com/a#section", want: "https://example.com/a"},
		{name: "sorts query parameters", rawURL: "https://example.com/?b=2&a=1", want: "https://example.com/?a=1&b=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Normalize(tt.rawURL)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
