package pipeline

import (
	"strings"

	"github.com/viralclips/clip-engine/internal/models"
)

// ClipTranscription joins the text of every segment whose interval overlaps
// [start, end), preserving segment order. Segments entirely before or after
// the window are excluded.
func ClipTranscription(segments []models.Segment, start, end float64) string {
	var parts []string
	for _, seg := range segments {
		if seg.Start < end && seg.End > start {
			text := strings.TrimSpace(seg.Text)
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}
