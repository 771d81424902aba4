package storage

import (
	"testing"

	"github.com/viralclips/clip-engine/internal/models"
)

func TestPublicURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		endpoint string
		bucket   string
		key      string
		want     string
	}{
		{
			name:     "plain endpoint",
			endpoint: "https://storage.example.com",
			bucket:   "clips",
			key:      "clips/proj-1/a.mp4",
			want:     "https://storage.example.com/clips/clips/proj-1/a.mp4",
		},
		{
			name:     "trailing slash stripped",
			endpoint: "https://storage.example.com/",
			bucket:   "clips",
			key:      "a.mp4",
			want:     "https://storage.example.com/clips/a.mp4",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			storage := models.StorageConfig{Endpoint: tc.endpoint, Bucket: tc.bucket}
			if got := PublicURL(storage, tc.key); got != tc.want {
				t.Fatalf("PublicURL = %q, want %q", got, tc.want)
			}
		})
	}
}
