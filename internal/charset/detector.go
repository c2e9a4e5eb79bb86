package charset

import "github.com/saintfish/chardet"

// Detector reports the charset name that best describes data, or an empty
// string when nothing could be detected.
type Detector interface {
	Detect(data []byte) string
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(data []byte) string

// Detect calls f(data).
func (f DetectorFunc) Detect(data []byte) string {
	return f(data)
}

type chardetAdapter struct {
	detector *chardet.Detector
}

// NewTextDetector returns a Detector backed by the chardet plain-text recognisers.
func NewTextDetector() Detector {
	return &chardetAdapter{detector: chardet.NewTextDetector()}
}

func (a *chardetAdapter) Detect(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	result, err := a.detector.DetectBest(data)
	if err != nil || result == nil {
		return ""
	}
	return result.Charset
}
