// Package language normalizes the language codes found on caption tracks and
// in the configuration.
//
// YouTube reports caption languages as BCP 47 tags ("en", "en-GB"), Vimeo text
// tracks use similar tags, and users may configure a name or a three-letter
// code. Everything is reduced to an ISO 639-1 code before comparison.
package language
