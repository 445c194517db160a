// Package fetch holds the pieces shared by the platform fetchers: the
// heuristics that pull a podcast name and interviewee details out of titles
// and descriptions, and the HTTP client they share.
//
// Platform clients live in the youtube and vimeo subpackages.
package fetch
