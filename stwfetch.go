// Package stwfetch provides a focused crawler that harvests Standard
// Treatment Workflow (STW) PDF documents from a single authority's website.
// It walks the site breadth-first from a seed page, admits only in-domain
// URLs, filters candidate documents by relevance and size, and persists
// accepted documents together with JSON metadata sidecars.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, sqlite/, goquery/).
package stwfetch
