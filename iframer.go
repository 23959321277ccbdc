// Package iframer resolves arbitrary web page URLs into embeddable media
// records: title, author, thumbnail and, when one is available, a sanitized
// iframe embed.
//
// Resolution tries several independent oEmbed strategies in a fixed order
// (HTML discovery, provider registry, player meta tags) alongside generic
// page metadata extraction, and always produces a best-effort Media record.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, bloom/).
package iframer
