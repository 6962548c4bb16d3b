// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Key

The platform admin key uses HMAC-SHA256 over a fixed subject:

	adminKey := auth.GenerateAdminKey(salt)
	err := auth.ValidateAdminKey(adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's
deterministic, it can be validated without storing it in the database.

# Judge Tokens

Judge tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateJudgeToken()

Tokens are URL-safe base64 encoded and stored on the judge row. Each
judge-scoped request carries its token in the X-Judge-Token header.

# IP Hashing

For privacy-preserving audit trails on evaluation submissions:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
