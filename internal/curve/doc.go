// Package curve synthesizes response curves over a charted time window.
//
// A curve is the baseline plus the superposition of every placed item's
// response. Each response rises along a quarter sine to the item's magnitude at
// PeakTime and decays along a quarter cosine back to zero at Duration, both
// measured in hours from the item's onset.
//
// # Core Types
//
//   - [Params]: baseline, window, sample rate and clamp bounds
//   - [Window]: the charted hours of the day, possibly wrapping midnight
//   - [Sample]: one point of a curve with its clock label
//
// # Sampling
//
// A window of span hours at SampleRate samples per hour yields
// round(span*SampleRate)+1 samples. Sample i lies at i/SampleRate hours and an
// item at normalized position p starts at p*(n-1)/SampleRate hours.
//
// Every function in this package is pure and safe for concurrent use.
package curve
