// Copyright (c) 2025 the nanikiru authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types, request/response types, and
shared validation limits.

Domain types (Account, Problem, Vote, Session, Tally) are plain data
records passed between the store layer and the handlers. Fields that
must never leak to clients (password hashes, session tokens, voter
identity on votes) are tagged `json:"-"`.

ParseOptions implements the option list rule used both when a problem is
created and when a vote is checked against it: split on comma, trim,
drop empties, collapse duplicates, preserve order.
*/
package models
