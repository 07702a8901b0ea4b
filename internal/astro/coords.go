// Package astro converts equatorial sky coordinates into the 3-D unit
// sphere embedding used for distance-based clustering, and parses the
// sexagesimal coordinate strings accepted by catalog cone searches.
//
// Euclidean distance on raw RA/Dec values misrepresents angular
// separation (RA wraps at 360 and degenerates near the poles), so all
// clustering runs on unit-sphere Cartesian vectors where chord length
// approximates angular distance.
package astro

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Vector3 is a point in the 3-D Cartesian embedding.
type Vector3 struct {
	X, Y, Z float64
}

// Cartesian projects a right ascension / declination pair, both in
// degrees, onto the unit sphere.
func Cartesian(raDeg, decDeg float64) Vector3 {
	ra := raDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180
	cosDec := math.Cos(dec)
	return Vector3{
		X: cosDec * math.Cos(ra),
		Y: cosDec * math.Sin(ra),
		Z: math.Sin(dec),
	}
}

// ChordForAngle returns the unit-sphere chord length subtended by an
// angular separation in degrees. Useful for choosing a clustering
// radius in the embedding from an on-sky angle.
func ChordForAngle(deg float64) float64 {
	return 2 * math.Sin(deg*math.Pi/360)
}

var (
	raPattern  = regexp.MustCompile(`^(\d{1,2})h(\d{1,2})m(\d{1,2}(?:\.\d+)?)s$`)
	decPattern = regexp.MustCompile(`^([+-]?)(\d{1,2})d(\d{1,2})m(\d{1,2}(?:\.\d+)?)s$`)
)

// ParseRA converts a sexagesimal right ascension such as "12h30m00s"
// to degrees. Hours run 0-23; one hour of RA is fifteen degrees.
func ParseRA(s string) (float64, error) {
	m := raPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid right ascension %q: want form 12h30m00s", s)
	}

	hours, _ := strconv.ParseFloat(m[1], 64)
	minutes, _ := strconv.ParseFloat(m[2], 64)
	seconds, _ := strconv.ParseFloat(m[3], 64)
	if hours >= 24 || minutes >= 60 || seconds >= 60 {
		return 0, fmt.Errorf("right ascension %q out of range", s)
	}

	return 15 * (hours + minutes/60 + seconds/3600), nil
}

// ParseDec converts a sexagesimal declination such as "+12d00m00s" to
// degrees in [-90, 90].
func ParseDec(s string) (float64, error) {
	m := decPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid declination %q: want form +12d00m00s", s)
	}

	degrees, _ := strconv.ParseFloat(m[2], 64)
	minutes, _ := strconv.ParseFloat(m[3], 64)
	seconds, _ := strconv.ParseFloat(m[4], 64)
	if minutes >= 60 || seconds >= 60 {
		return 0, fmt.Errorf("declination %q out of range", s)
	}

	deg := degrees + minutes/60 + seconds/3600
	if m[1] == "-" {
		deg = -deg
	}
	if deg < -90 || deg > 90 {
		return 0, fmt.Errorf("declination %q out of range", s)
	}
	return deg, nil
}
