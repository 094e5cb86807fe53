// Package main provides forgectl, the CLI for the Fantasy Forge API server.
//
// The server is run via the forgectl CLI:
//
//	# Set the session token signing key
//	export FORGE_SESSION_KEY=$(head -c 32 /dev/urandom | base64)
//
//	# Run database migrations
//	forgectl db migrate
//
//	# Bootstrap an admin user
//	forgectl user create --role admin root root@example.com
//
//	# Start the server
//	forgectl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - FORGE_SESSION_KEY: HMAC key for session token signing
//   - FORGE_CONFIG_PATH: Config directory (default: /etc/forge)
//   - FORGE_LOG_LEVEL: Log level (debug enables SQL logging)
//   - FORGE_AUDIT_ENABLED: Set to "false" to disable audit logging
//   - PORT: Server port (default: 8000)
package main
