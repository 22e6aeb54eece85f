// Package entropy implements the cursor-sampling seed demo: it collects
// mouse movement samples, filters stagnant points, scores the movement with
// a Shannon estimate and condenses the stream into a 64-bit seed.
//
// This is a demonstration, not a vetted entropy source: there is no
// whitening and the sampling is biased by timers and screen geometry.
package entropy

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"time"
)

// ErrNotEnoughSamples indicates seed generation was requested before the
// collector gathered a usable movement trail.
var ErrNotEnoughSamples = errors.New("not enough movement samples collected")

// MinSamplesForSeed is the smallest trail a seed may be derived from.
const MinSamplesForSeed = 16

// angleBuckets quantizes movement directions for the entropy estimate.
const angleBuckets = 16

// SamplePoint is one accepted cursor sample with its movement metrics
// relative to the previous accepted sample.
type SamplePoint struct {
	X         int
	Y         int
	Timestamp time.Time
	Distance  float64
	Speed     float64 // pixels per second
	Angle     float64 // radians
}

// SeedResult is the outcome of condensing a movement trail.
type SeedResult struct {
	Seed          uint64
	LastX         int
	LastY         int
	Digest        string
	DataPoints    int
	TotalDistance float64
	AvgSpeed      float64
	EntropyScore  float64 // 0..1, Shannon estimate over movement angles
}

// Collector accumulates cursor samples, dropping stagnant points (movement
// below a minimum distance) and keeping at most maxPoints samples. It is
// owned by a single sampling loop and is not safe for concurrent use.
type Collector struct {
	minDistance float64
	maxPoints   int

	points        []SamplePoint
	lastX, lastY  int
	hasLast       bool
	lastTimestamp time.Time

	stagnant      int
	totalSamples  int
	totalDistance float64
}

// NewCollector creates a collector. Points closer than minDistance to the
// previous accepted point count as stagnant and are discarded.
func NewCollector(minDistance float64, maxPoints int) *Collector {
	if minDistance <= 0 {
		minDistance = 1.0
	}
	if maxPoints <= 0 {
		maxPoints = 1000
	}
	return &Collector{
		minDistance: minDistance,
		maxPoints:   maxPoints,
	}
}

// Add offers a cursor position to the collector and reports whether it was
// accepted. The first sample is always accepted as the trail anchor.
func (c *Collector) Add(x, y int, at time.Time) bool {
	c.totalSamples++

	if !c.hasLast {
		c.hasLast = true
		c.lastX, c.lastY = x, y
		c.lastTimestamp = at
		c.push(SamplePoint{X: x, Y: y, Timestamp: at})
		return true
	}

	dx := float64(x - c.lastX)
	dy := float64(y - c.lastY)
	distance := math.Hypot(dx, dy)
	if distance < c.minDistance {
		c.stagnant++
		return false
	}

	elapsed := at.Sub(c.lastTimestamp).Seconds()
	speed := 0.0
	if elapsed > 0 {
		speed = distance / elapsed
	}

	point := SamplePoint{
		X:         x,
		Y:         y,
		Timestamp: at,
		Distance:  distance,
		Speed:     speed,
		Angle:     math.Atan2(dy, dx),
	}
	c.lastX, c.lastY = x, y
	c.lastTimestamp = at
	c.totalDistance += distance
	c.push(point)
	return true
}

func (c *Collector) push(p SamplePoint) {
	if len(c.points) == c.maxPoints {
		copy(c.points, c.points[1:])
		c.points = c.points[:len(c.points)-1]
	}
	c.points = append(c.points, p)
}

// Len returns the number of accepted samples.
func (c *Collector) Len() int { return len(c.points) }

// Stagnant returns the number of filtered stagnant samples.
func (c *Collector) Stagnant() int { return c.stagnant }

// TotalSamples returns how many samples were offered, accepted or not.
func (c *Collector) TotalSamples() int { return c.totalSamples }

// TotalDistance returns the accumulated movement distance in pixels.
func (c *Collector) TotalDistance() float64 { return c.totalDistance }

// LastPoint returns the most recent accepted sample.
func (c *Collector) LastPoint() (SamplePoint, bool) {
	if len(c.points) == 0 {
		return SamplePoint{}, false
	}
	return c.points[len(c.points)-1], true
}

// Points returns a copy of the accepted samples in order.
func (c *Collector) Points() []SamplePoint {
	out := make([]SamplePoint, len(c.points))
	copy(out, c.points)
	return out
}

// EntropyScore estimates movement randomness as normalized Shannon entropy
// over quantized movement angles, in [0, 1]. Straight-line motion scores
// near 0, chaotic motion approaches 1.
func (c *Collector) EntropyScore() float64 {
	if len(c.points) < 2 {
		return 0
	}

	var counts [angleBuckets]int
	total := 0
	for _, p := range c.points[1:] {
		bucket := int((p.Angle + math.Pi) / (2 * math.Pi) * angleBuckets)
		if bucket >= angleBuckets {
			bucket = angleBuckets - 1
		}
		if bucket < 0 {
			bucket = 0
		}
		counts[bucket]++
		total++
	}

	entropy := 0.0
	for _, n := range counts {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(angleBuckets)
}

// Seed condenses the movement trail into a 64-bit seed: every sample's
// coordinates and timestamp are fed to SHA-256 and the first 8 digest bytes
// become the seed. Deterministic for a given trail.
func (c *Collector) Seed() (*SeedResult, error) {
	if len(c.points) < MinSamplesForSeed {
		return nil, ErrNotEnoughSamples
	}

	h := sha256.New()
	var buf [24]byte
	for _, p := range c.points {
		binary.BigEndian.PutUint64(buf[0:8], uint64(int64(p.X)))
		binary.BigEndian.PutUint64(buf[8:16], uint64(int64(p.Y)))
		binary.BigEndian.PutUint64(buf[16:24], uint64(p.Timestamp.UnixNano()))
		h.Write(buf[:])
	}
	digest := h.Sum(nil)

	avgSpeed := 0.0
	for _, p := range c.points {
		avgSpeed += p.Speed
	}
	avgSpeed /= float64(len(c.points))

	last := c.points[len(c.points)-1]
	return &SeedResult{
		Seed:          binary.BigEndian.Uint64(digest[:8]),
		LastX:         last.X,
		LastY:         last.Y,
		Digest:        hex.EncodeToString(digest),
		DataPoints:    len(c.points),
		TotalDistance: c.totalDistance,
		AvgSpeed:      avgSpeed,
		EntropyScore:  c.EntropyScore(),
	}, nil
}

// SimulatePosition produces a plausible cursor position for demo runs with
// no real mouse source, composing two sine paths per axis.
func SimulatePosition(at time.Time) (int, int) {
	t := float64(at.UnixNano()) / float64(time.Second)
	x := int(800 + 500*math.Sin(t*0.5) + 200*math.Sin(t*2.3))
	y := int(400 + 300*math.Cos(t*0.7) + 150*math.Cos(t*1.9))
	return x, y
}
