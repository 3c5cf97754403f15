// Package domain models hourly weather observations and the flood-risk
// rules evaluated over them.
//
// # Data Source
//
// Weather series originate from the Open-Meteo forecast API
// (https://api.open-meteo.com/v1/forecast), fetched hourly for a single
// location with the variables temperature_2m, precipitation,
// relativehumidity_2m, and windspeed_10m. The adapter validates the raw
// response and hands this package an already well-formed WeatherSeries;
// nothing here performs I/O.
//
// # Series Conventions
//
// Samples are hourly, ordered by ascending timestamp, with no duplicate
// timestamps. Units follow Open-Meteo defaults:
//
//	precipitation        millimetres per hour (never negative)
//	temperature_2m       degrees Celsius
//	windspeed_10m        kilometres per hour (never negative)
//	relativehumidity_2m  percent, 0-100
//
// A series that violates any of these is rejected with InvalidInputError
// before classification. Downstream code can therefore skip defensive
// range checks.
//
// # Flood-Risk Rules
//
// The classifier evaluates three independent rules against the tail of
// the series:
//
//	HEAVY_RAINFALL       latest rainfall above the heavy threshold
//	TEMP_DROP            temperature fell more than the drop threshold
//	                     versus the sample N steps earlier
//	SUSTAINED_RAINFALL   rainfall above the low threshold for the last
//	                     M consecutive samples
//
// Two or more triggered rules classify as HIGH, as does HEAVY_RAINFALL
// alone once the latest rainfall clears a second, severe threshold.
// Exactly one triggered rule classifies as MODERATE, otherwise LOW.
// All thresholds and window sizes come from a RiskConfig validated at
// construction time; given a series and a config, the outcome is fully
// deterministic.
//
// # Hazard Summary and Advisories
//
// Beyond the flood classifier, the package derives heat and storm hazard
// levels from trailing maxima (max temperature and max wind over the last
// 24 samples) and renders advisory text in English, Hindi, and Marathi
// for NGO field teams. Advisory wording is fixed; only the levels vary.
package domain
