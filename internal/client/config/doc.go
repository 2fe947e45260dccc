// Package config loads runtime configuration for the support-portal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see Defaults).
//  2. Environment variables prefixed with PORTAL_, optionally from a .env file.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend API base URL
//	-d string   local session database file
//	-l string   log level
//
// # Environment
//
//	PORTAL_API_URL, PORTAL_STORE_PATH, PORTAL_LOG_LEVEL,
//	PORTAL_LOG_FORMAT, PORTAL_TOKEN_HEADER
//
// # JSON schema
//
//	{
//	  "api_url": "http://localhost:8081",
//	  "store_path": "portal.db",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "token_header": "Jwt-Token"
//	}
package config
