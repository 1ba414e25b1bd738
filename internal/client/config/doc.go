// Package config loads runtime configuration for the bank CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string      backend API base URL
//	-admin string  email that receives the administrator role
//	-t int         per-request timeout (seconds)
//	-i int         online status check interval (seconds)
//	-d string      SQLite database path
//	-l string      log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds. Keys that are absent keep their current value:
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000/api",
//	  "admin_email": "admin@login.com",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "database_path": "bankclient.db",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "statement_dir": "statements",
//	  "s3_bucket": "statements",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin"
//	}
//
// This package does not read environment variables.
package config
