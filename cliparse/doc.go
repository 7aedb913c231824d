// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

Flags fall back to environment variables, then to defaults:

	-p                 PORT                  3000
	-t                 DATABASE_TYPE         sqlite (or postgres)
	-d                 DATABASE_URL          file:ecocondor.db for sqlite
	-timeout           REQUEST_TIMEOUT       15s
	-token-secret      AUTH_TOKEN_SECRET     HS256 key
	-token-public-key  AUTH_PUBLIC_KEY_FILE  RS256 public key PEM file
	                   AUTH_TOKEN_ISSUER     optional iss check
	                   AUTH_TOKEN_AUDIENCE   optional aud check
	-rewards-file      REWARDS_FILE          YAML catalog seeded at start-up
	-env               APP_ENV               development; production logs JSON
	-log-level         LOG_LEVEL             info
	-env-file          ENV_FILE              .env

CLI flags take precedence over environment variables. The env file is loaded
first with godotenv; variables already set in the process win over it, and a
missing file is ignored.

# Validation

ParseFlags returns an error if:

  - neither AUTH_TOKEN_SECRET nor AUTH_PUBLIC_KEY_FILE is set
  - DATABASE_TYPE is postgres and no DATABASE_URL is given
  - PORT, REQUEST_TIMEOUT, DATABASE_TYPE or LOG_LEVEL cannot be parsed
*/
package cliparse
