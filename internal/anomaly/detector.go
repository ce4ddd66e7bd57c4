package anomaly

import "math"

// Verdict is a detector's outcome for one fresh value against history.
type Verdict struct {
	Anomalous  bool
	Confidence float64
	Message    string
}

// Detector evaluates a fresh value against a metric's prior history
// (oldest first, current value not yet included).
type Detector interface {
	Detect(history []MetricPoint, current float64) Verdict
}

// RelativeRateOfChangeDetector flags |(x-prev)/prev| > threshold.
type RelativeRateOfChangeDetector struct{ Threshold float64 }

func (d RelativeRateOfChangeDetector) Detect(history []MetricPoint, current float64) Verdict {
	if len(history) == 0 {
		return Verdict{}
	}
	prev := history[len(history)-1].Value
	if prev == 0 {
		return Verdict{}
	}
	rate := math.Abs((current - prev) / prev)
	if rate > d.Threshold {
		conf := math.Min(1, rate/d.Threshold-1+0.7)
		return Verdict{Anomalous: true, Confidence: conf, Message: "relative rate of change exceeded threshold"}
	}
	return Verdict{}
}

// AbsoluteChangeDetector flags |x-prev| > threshold.
type AbsoluteChangeDetector struct{ Threshold float64 }

func (d AbsoluteChangeDetector) Detect(history []MetricPoint, current float64) Verdict {
	if len(history) == 0 {
		return Verdict{}
	}
	prev := history[len(history)-1].Value
	change := math.Abs(current - prev)
	if change > d.Threshold {
		conf := math.Min(1, 0.7+change/(d.Threshold+1e-9)*0.1)
		return Verdict{Anomalous: true, Confidence: conf, Message: "absolute change exceeded threshold"}
	}
	return Verdict{}
}

// ZScoreDetector flags |x-mean|/stddev > K, requiring at least MinHistory
// numeric data points.
type ZScoreDetector struct {
	K          float64
	MinHistory int
}

func (d ZScoreDetector) Detect(history []MetricPoint, current float64) Verdict {
	if len(history) < d.MinHistory {
		return Verdict{}
	}
	mean, stddev := meanStddev(history)
	if stddev == 0 {
		return Verdict{}
	}
	z := math.Abs(current-mean) / stddev
	if z > d.K {
		conf := math.Min(1, z/d.K-1+0.7)
		return Verdict{Anomalous: true, Confidence: conf, Message: "z-score exceeded threshold"}
	}
	return Verdict{}
}

func meanStddev(history []MetricPoint) (mean, stddev float64) {
	n := float64(len(history))
	var sum float64
	for _, p := range history {
		sum += p.Value
	}
	mean = sum / n
	var sqDiff float64
	for _, p := range history {
		d := p.Value - mean
		sqDiff += d * d
	}
	stddev = math.Sqrt(sqDiff / n)
	return
}
