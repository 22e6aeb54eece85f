// Package config provides configuration settings for logging and the
// optional audit database, validated with go-playground/validator.
package config
