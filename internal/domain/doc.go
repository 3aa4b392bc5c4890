// Package domain models tropical-cyclone track and forecast data published in
// the ATCF (Automated Tropical Cyclone Forecasting) fixed-field text format.
//
// # Data Source
//
// Agencies publish one file per storm. Best-track decks ("b-decks") hold the
// observed positions; aid decks ("a-decks") hold every model forecast issued
// during the storm's life. File names are built from the storm identity:
//
//	bwp012025.dat  best track for storm 01 of 2025 in the western Pacific
//	awp012025.dat  forecast aids for the same storm
//
// # Line Format
//
// Each line is comma-delimited. The first eleven positional fields are read.
// Of the rest only the storm name (field 28 on full-width best-track lines) is
// kept, and it names the storm only when BuildOptions.PreferDeckName is set.
// Wind radii and the remaining fields are ignored:
//
//	WP, 01, 2025090100, 03, OFCL,   0, 145N, 1205E,  80,  990, TY
//	 |   |       |       |    |     |    |     |      |     |    |
//	 |   |       |       |    |     |    |     |      |     |    storm type
//	 |   |       |       |    |     |    |     |      |     pressure (mb)
//	 |   |       |       |    |     |    |     |      max wind (kt)
//	 |   |       |       |    |     |    |     longitude, tenths + E/W
//	 |   |       |       |    |     |    latitude, tenths + N/S
//	 |   |       |       |    |     forecast hour (tau)
//	 |   |       |       |    technique / issuing model
//	 |   |       |       technique number
//	 |   |       synoptic time YYYYMMDDHH (UTC)
//	 |   cyclone number
//	 basin
//
// Lines with fewer than eleven fields are skipped. Malformed numeric fields
// decode to zero rather than failing the line.
//
// # Observations and Forecasts
//
// A line with tau 0 is an observation. A positive tau is a forecast issued by
// the model named in the technique field. CARQ is the combined-ARQ quality
// control entry: its records are kept as data but it never names a storm.
//
// # Units
//
// Wind speed is carried in knots and converted to km/h with round(kt * 1.852).
// Distances are great-circle (haversine) kilometres on a 6371 km sphere.
package domain
