// Package ensemble reconciles forecasts from independent models into a
// per-hour consensus track with an uncertainty envelope.
//
// For every forecast hour present in at least one model, each model that has
// a record at exactly that hour contributes one position. Models without a
// record at an hour are left out of it; nothing is interpolated. The consensus
// is the arithmetic mean of the contributions. Hours with two or more
// contributors also get an uncertainty point: the population standard
// deviation of latitude and longitude, converted to kilometres with
// 1 deg lat = 111 km and 1 deg lon = 111 km * cos(lat), plus the bounding box of
// the contributing positions and a confidence label.
//
// Results are recomputed from the input on every call.
package ensemble
