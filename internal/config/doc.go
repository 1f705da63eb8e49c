// Package config loads the process-wide settings for teetimes.
//
// Settings come from the environment, optionally seeded from a .env file.
// The marketplace session cookie (CHRONO_COOKIE) is required; everything
// else has a default. The course list is JSON data, embedded by default and
// replaceable with an external file.
package config
