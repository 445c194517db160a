// Package notes renders the Markdown note written for each processed episode
// and the analysis prompt embedded in it.
//
// Two prompt styles exist: standard asks for a structured analysis (quotes,
// claims, references, themes); atomic asks for granular notecards sized to
// the episode length. Templates are embedded and rendered with text/template.
package notes
