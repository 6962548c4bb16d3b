// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Judgeboard API server.

Judgeboard is a competition-management service: submitted ideas are
assigned to judges under capacity limits, evaluated on a ten-question
rating scale, and ranked on a deterministic, tie-broken leaderboard.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=judgeboard.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3419 -d judgeboard.db -t sqlite --admin-salt ...

A .env file in the working directory is loaded first; real environment
variables take precedence.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: assignment store, lifecycle, scoring, auto-assign, ranking
  - handlers: HTTP request handlers (ideas, judges, assignments,
    evaluations, rankings)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, Prometheus metrics
  - models: Request/response types and validation
  - auth: Key and token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
