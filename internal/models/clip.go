package models

// Segment is a timestamped chunk of transcribed speech. Offsets are seconds,
// end >= start, rounded to 2 decimal places by the transcriber.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Duration float64   `json:"duration"`
}

// Moment is a candidate clip descriptor returned by the analysis service.
// End > Start is not guaranteed by the service and must be validated before
// extraction.
type Moment struct {
	Start          float64  `json:"start"`
	End            float64  `json:"end"`
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Classification string   `json:"classification,omitempty"`
	Hashtags       []string `json:"hashtags,omitempty"`
	Hook           string   `json:"hook,omitempty"`
	CTA            string   `json:"cta,omitempty"`
}

// Clip is one successfully processed moment: cut, uploaded, and annotated
// with the transcript text overlapping its time range.
type Clip struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Start          float64  `json:"start"`
	End            float64  `json:"end"`
	Duration       float64  `json:"duration"`
	VideoURL       string   `json:"video_url"`
	Transcription  string   `json:"transcription"`
	Classification string   `json:"classification"`
	Hashtags       []string `json:"hashtags"`
	Hook           string   `json:"hook"`
	CTA            string   `json:"cta"`
}
